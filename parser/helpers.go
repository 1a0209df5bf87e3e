package parser

func CapInt64(v int64, max int64) int64 {
	if v > max {
		return max
	}
	return v
}

func CapInt(v int, max int) int {
	if v > max {
		return max
	}
	return v
}
