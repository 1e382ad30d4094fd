package ui

// Status carries the per-frame state lines the host wants on the HUD panel.
type Status struct {
	Tick       uint64
	HistoryLen int
	HistoryCap int

	WindTheta float64 // heading in radians, valid when WindSet
	WindSet   bool

	Startled bool
	Paused   bool
}
