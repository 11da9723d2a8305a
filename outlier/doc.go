// Package outlier classifies scans that deviate from the consensus of
// a group of repeated measurements.
//
// Three interchangeable strategies are provided:
//
//   - RejectChiSquare thresholds the modified chi-square score from
//     package robust. Cheap and effective against gross deviations.
//   - Classifier fits a density Detector (by default LOF, a k-nearest
//     neighbor local outlier factor) on a trimmed subset of the data
//     and predicts on the full set, so the model trains on an
//     uncontaminated consensus yet still labels every scan.
//   - Combined chains the two: the chi-square pass removes gross
//     outliers before the density model is fitted, sharpening its
//     sensitivity to subtler shape anomalies.
//
// All strategies label rows with +1 (inlier) or −1 (outlier). Any
// novelty model implementing Detector can substitute for LOF.
package outlier
