package profitability

// Solve resuelve el PV y regenera la tabla completa. Determinista y reentrante:
// cada llamada reemplaza por completo al resultado anterior.
func Solve(in CostInputs) Result {
	sol := SolvePrice(in)
	if !finite(sol.Price) || sol.Price <= 0 {
		return Result{Converged: sol.Converged, Iterations: sol.Iterations, Rows: []RoasRow{}}
	}
	return Result{
		Price:      sol.Price,
		Converged:  sol.Converged,
		Iterations: sol.Iterations,
		Rows:       BuildTable(sol.Price, in),
	}
}

// Current evalúa el ROAS observado de las entradas, si existe y el resultado es viable.
func Current(res Result, in CostInputs) *Point {
	if in.CurrentRoas == nil || *in.CurrentRoas <= 0 || !res.Feasible() {
		return nil
	}
	p := EvaluateAt(res.Price, in, *in.CurrentRoas)
	return &p
}
