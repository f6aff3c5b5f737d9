package main

import (
	"log/slog"

	"github.com/Hixos/control"
	"github.com/Hixos/control/blocks"
	"github.com/Hixos/control/numeric"
	"github.com/Hixos/control/params"
	"github.com/Hixos/control/simplot"
)

// CartParams describe the plant: a point mass on a rail.
type CartParams struct {
	Mass float64 `toml:"mass"`
	Pos0 float64 `toml:"pos0"`
	Vel0 float64 `toml:"vel0"`
}

// Cart is the plant model: a mass driven by a force input, integrated with
// RK4. Its ports are derived from the struct tags.
type Cart struct {
	control.NoDelay
	UForce control.Input[float64]  `io:"in,u_force"`
	YPos   control.Output[float64] `io:"out,y_pos"`
	YVel   control.Output[float64] `io:"out,y_vel"`
	YAcc   control.Output[float64] `io:"out,y_acc"`

	params CartParams
	state  []float64 // position, velocity
}

func NewCart(p CartParams) *Cart {
	return &Cart{
		YPos:   control.NewOutput[float64](),
		YVel:   control.NewOutput[float64](),
		YAcc:   control.NewOutput[float64](),
		params: p,
		state:  []float64{p.Pos0, p.Vel0},
	}
}

func NewCartFromStore(store *params.Store, def CartParams) (*Cart, error) {
	p, err := params.Block(store, "cart", def)
	if err != nil {
		return nil, err
	}
	return NewCart(p), nil
}

func (c *Cart) Name() string { return "cart" }

func (c *Cart) Inputs() map[string]control.InputPort {
	in, _ := control.Ports(c)
	return in
}

func (c *Cart) Outputs() map[string]control.OutputPort {
	_, out := control.Ports(c)
	return out
}

func (c *Cart) Step(k control.StepInfo) (control.StepResult, error) {
	acc := c.UForce.Get() / c.params.Mass

	c.state = numeric.RungeKutta4{}.Solve(func(_ float64, y []float64) []float64 {
		return []float64{y[1], acc}
	}, k.T, k.Dt, c.state)

	c.YPos.Set(c.state[0])
	c.YVel.Set(c.state[1])
	c.YAcc.Set(acc)
	return control.Continue, nil
}

// plotted lists the signals the run command records and renders.
var plotted = []string{
	"/cart/pos", "/cart/vel", "/cart/acc", "/force",
	"/ref/pos", "/ref/vel", "/err/pos", "/err/vel",
}

// buildCart assembles the cascaded position/velocity PID control loop
// around the cart plant. Both loops are closed through one-step delays so
// the feedback wiring stays acyclic after delay filtering.
func buildCart(log *slog.Logger, withPlots bool) (*control.System, *simplot.Signals, *params.Store, error) {
	store, err := params.NewStore(paramsPath, "cart")
	if err != nil {
		return nil, nil, nil, err
	}
	b := control.NewBuilder(control.WithLogger(log))

	cart, err := NewCartFromStore(store, CartParams{Mass: 1, Pos0: 0, Vel0: 0})
	if err != nil {
		return nil, nil, nil, err
	}
	if err := b.AddBlock(cart,
		control.C{"u_force": "/force"},
		control.C{"y_pos": "/cart/pos", "y_vel": "/cart/vel", "y_acc": "/cart/acc"}); err != nil {
		return nil, nil, nil, err
	}

	// Inner loop: velocity reference -> commanded force.
	velDelay, err := blocks.NewDelayFromStore[float64]("vel_delay", store, 0)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := b.AddBlock(velDelay,
		control.C{"u": "/cart/vel"}, control.C{"y": "/cart/vel_delayed"}); err != nil {
		return nil, nil, nil, err
	}
	if err := b.AddBlock(blocks.NewAddWithGains("vel_err", []float64{1, -1}),
		control.C{"u1": "/ref/vel", "u2": "/cart/vel_delayed"},
		control.C{"y": "/err/vel"}); err != nil {
		return nil, nil, nil, err
	}
	pidVel, err := blocks.NewPIDFromStore("pid_vel", store, blocks.PIDParams[float64]{Kp: 4})
	if err != nil {
		return nil, nil, nil, err
	}
	if err := b.AddBlock(pidVel,
		control.C{"u": "/err/vel"}, control.C{"y": "/force"}); err != nil {
		return nil, nil, nil, err
	}

	// Outer loop: position reference -> velocity reference.
	posDelay, err := blocks.NewDelayFromStore[float64]("pos_delay", store, 0)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := b.AddBlock(posDelay,
		control.C{"u": "/cart/pos"}, control.C{"y": "/cart/pos_delayed"}); err != nil {
		return nil, nil, nil, err
	}
	if err := b.AddBlock(blocks.NewAddWithGains("pos_err", []float64{1, -1}),
		control.C{"u1": "/ref/pos", "u2": "/cart/pos_delayed"},
		control.C{"y": "/err/pos"}); err != nil {
		return nil, nil, nil, err
	}
	pidPos, err := blocks.NewPIDFromStore("pid_pos", store, blocks.PIDParams[float64]{Kp: 1})
	if err != nil {
		return nil, nil, nil, err
	}
	if err := b.AddBlock(pidPos,
		control.C{"u": "/err/pos"}, control.C{"y": "/ref/vel"}); err != nil {
		return nil, nil, nil, err
	}

	posRef, err := blocks.NewConstantFromStore("pos_ref", store, 15.0)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := b.AddBlock(posRef, nil, control.C{"y": "/ref/pos"}); err != nil {
		return nil, nil, nil, err
	}

	signals := simplot.NewSignals()
	if withPlots {
		for _, sig := range plotted {
			if err := simplot.AddPlotter[float64](b, sig, signals); err != nil {
				return nil, nil, nil, err
			}
		}
	}

	p, err := params.System(store, control.Parameters{Dt: 0.01, MaxIter: 1000})
	if err != nil {
		return nil, nil, nil, err
	}
	sys, err := b.Build("cart", p)
	if err != nil {
		return nil, nil, nil, err
	}
	return sys, signals, store, nil
}
