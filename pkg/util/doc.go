// Package util holds small helpers shared across mockdir packages.
//
//   - Within: confine a resolved file path to its base directory
//   - TruncateBody: cap request bodies before they reach the log
package util
