package models

// Validity codes as they appear in source tables.
const (
	CodeNoData     = 0
	CodeDetection  = 1
	CodeLowerLimit = 2
	CodeUpperLimit = 3
	CodeAlreadyLog = 4
	CodeIgnored    = 9
)

// Assignable range for Source.SetValid. CodeIgnored lies outside it.
const (
	minValidCode = CodeNoData
	maxValidCode = CodeAlreadyLog
)

// PointKind classifies one flux measurement by its validity code.
type PointKind int

const (
	KindNoData PointKind = iota
	KindDetection
	KindLowerLimit
	KindUpperLimit
	KindAlreadyLog
	KindIgnored
	KindOther
)

var kindNames = [...]string{
	KindNoData:     "no-data",
	KindDetection:  "detection",
	KindLowerLimit: "lower-limit",
	KindUpperLimit: "upper-limit",
	KindAlreadyLog: "already-log",
	KindIgnored:    "ignored",
	KindOther:      "other",
}

func (k PointKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindOf maps a validity code to its kind. Unrecognised codes are KindOther.
func KindOf(code int) PointKind {
	switch code {
	case CodeNoData:
		return KindNoData
	case CodeDetection:
		return KindDetection
	case CodeLowerLimit:
		return KindLowerLimit
	case CodeUpperLimit:
		return KindUpperLimit
	case CodeAlreadyLog:
		return KindAlreadyLog
	case CodeIgnored:
		return KindIgnored
	}
	return KindOther
}

// Usable reports whether points of this kind enter the chi-square term.
func (k PointKind) Usable() bool {
	return k == KindDetection || k == KindAlreadyLog
}

// CountUsable returns how many codes are detections or already-log values.
func CountUsable(valid []int) int {
	n := 0
	for _, c := range valid {
		if KindOf(c).Usable() {
			n++
		}
	}
	return n
}
