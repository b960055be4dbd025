// Package fit estimates the Arrhenius parameters (A, Ea) of one catalog
// model against an Observation Set by nonlinear least squares.
//
// Algorithm:
//
//	Unconstrained Levenberg–Marquardt over residuals r = model − observed,
//	with Marquardt diagonal scaling (running maximum of diag(JᵀJ)) and
//	Nielsen damping updates. The Jacobian is a forward difference with
//	step sqrt(eps)·|p_j| (sqrt(eps) when p_j == 0). Each damped 2×2 normal
//	system is solved with matrix.Solve.
//
// Convergence (first criterion met wins):
//
//	– SSR is exactly zero.
//	– Relative actual and predicted SSR reduction ≤ FTol on an accepted step.
//	– Step norm ≤ XTol·(‖p‖ + XTol).
//	– Gradient ∞-norm ≤ GTol.
//
// Covariance:
//
//	Cov = pinv(JᵀJ)·SSR/(N−2), with J recomputed at the solution and the
//	pseudo-inverse taken from a symmetric eigen-decomposition that drops
//	eigenvalues below (eps·max(N,2))²·λmax. When N ≤ 2, or the Jacobian or
//	pseudo-inverse is unavailable, every entry is +Inf and
//	Result.CovarianceValid is false.
//
// Options:
//
//	– InitialGuess:   (A0, Ea0), default (100, 10).
//	– MaxEvaluations: model evaluations over the data set, default 100000.
//	– FTol, XTol:     default 1.49012e-8.
//	– GTol:           default 0.
//	– Logger:         hclog.Logger, default null.
//
// Errors (sentinel):
//
//	– ErrInvalidObservationSet  empty input or columns of unequal length.
//	– ErrFitDidNotConverge      evaluation budget exhausted.
//	– ErrNumericalDivergence    non-finite residuals at the initial guess,
//	                            non-finite Jacobian, non-finite parameters.
//
// Fit is synchronous and holds no shared state; FitAll runs independent
// fits for several models concurrently.
package fit
