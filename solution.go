package lzopt

// SolutionInfo wraps one basis solution's (space, time) pair and the
// parsing that produced it, per spec.md section 3's "solution_info":
// (space, time, generating cost-model IDs). The generating cost-model IDs
// are reconstructible from the parsing and the model that produced it, so
// they are not stored redundantly here; callers that need them keep the
// *costmodel.Model alongside.
type SolutionInfo struct {
	Cost    float64
	Weight  float64
	Parsing Parsing
}

// Basis is the ordered pair (left, right) from spec.md section 3's
// "solution basis": left is feasible (weight <= W), right is infeasible
// (weight > W).
type Basis struct {
	Left, Right SolutionInfo
}
