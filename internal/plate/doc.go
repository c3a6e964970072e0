// Package plate maps fiducial marker identifiers to laboratory well-plate types.
//
// Every plate carries a single ArUco marker whose identifier encodes the plate
// format. The mapping is a fixed table:
//
//	10 -> 96well
//	15 -> 24well
//	20 -> 12well
//	25 -> 6well
//
// Any other identifier, including the absence of one, classifies as
// "Unknown Plate Type". Classification never fails.
//
// Plate formats are modelled as one enumerated Type rather than a type per well
// count; the formats differ only in their well layout.
package plate
