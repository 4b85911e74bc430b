// Package report computes run statistics and renders the console summary.
package report
