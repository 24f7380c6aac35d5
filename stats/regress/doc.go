// Package regress fits the low-order models used to correct photometry
// traces: ordinary least-squares lines for isosbestic and motion
// regression, and polynomials for photobleaching trends.
//
// Fits are computed with gonum. Sample pairs with a missing (NaN) value
// on either side are ignored.
package regress
