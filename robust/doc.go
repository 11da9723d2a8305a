// Package robust provides outlier-resistant statistics for groups of
// curves sharing one energy grid.
//
// The data layout is row-major: data[i][j] is the value of scan i at
// grid point j. Two scoring schemes are provided:
//
//   - TrimmedDeviation computes per-column trimmed mean and standard
//     deviation and scores each row by its mean squared standardized
//     deviation from the trimmed consensus.
//   - ChiSquare computes a modified chi-square statistic built on the
//     per-column median and the median absolute deviation (MAD) of the
//     whole matrix, which stays stable in the presence of gross
//     outliers.
//
// Both scores are per row and dimensionless; thresholding them yields
// inlier/outlier labels.
package robust
