package core

// Size describes the dimensions of a simulation field in world units.
type Size struct {
	W int
	H int
}

// AgentState is a render-friendly snapshot of one agent. Frontends consume
// these instead of the simulation's internal types.
type AgentState struct {
	X  float64
	Y  float64
	VX float64
	VY float64
}

// Sim defines the minimal contract an agent simulation must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Agents() []AgentState
}
