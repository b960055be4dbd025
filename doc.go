// Package arrhenius fits solid-state decomposition kinetics to
// time/temperature/conversion measurements.
//
// 🚀 What is arrhenius?
//
//	A small numeric toolkit plus CLI that brings together:
//		• Model library: fifteen integrated rate laws sharing k = A·exp(-Ea/(R·T))
//		• Fitting engine: Levenberg–Marquardt over (A, Ea) with a 2×2 covariance
//		• Temperature normalization of observations to the mean run temperature
//		• Reporting: prediction curve, text/YAML/JSON summaries, PNG plots
//
// Packages:
//
//	matrix/      — dense kernels: Gram, LU, Solve, Inverse, Jacobi eigen, pseudo-inverse
//	model/       — the numbered catalog of rate laws
//	observation/ — Observation Set, CSV/XLSX ingestion
//	fit/         — nonlinear least squares, covariance, batch fits
//	normalize/   — α·exp((Ea/R)(1/T − 1/Tavg))
//	report/      — prediction curve and summaries
//	plot/        — "<Label>_CurveFit.png"
//	config/      — YAML/TOML/.env configuration
//	cmd/arrhenius — models, fit, simulate and session commands
//
// Quick example:
//
//	set, _ := observation.Load("run.csv")
//	m, _ := model.ByName("first-order")
//	res, _ := fit.FitSet(m, set)
//	rep, _ := report.Build(res, set)
//	_ = rep.WriteText(os.Stdout)
//	_, _ = plot.Save(".", rep, plot.DefaultOptions())
//
// Units are seconds, Kelvin and kcal/mol; R = 1.985877534e-3 kcal/(mol·K).
//
//	go install github.com/katalvlaran/arrhenius/cmd/arrhenius@latest
package arrhenius
