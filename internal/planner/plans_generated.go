package planner

// This file stands in for the offline plan generator spec §6 names as an
// external collaborator: in a real deployment a header-stamping tool
// would emit one file like this per compiled query set. Table returns
// the fixed set of named plans the executor can dispatch.

var generatedPlans = map[string]*Plan{}

func init() {
	registerPlan(getHighValueCustomersPlan())
}

func registerPlan(p *Plan) {
	generatedPlans[p.Name] = p
}

// Table returns the statically generated plan set, keyed by name.
func Table() map[string]*Plan {
	return generatedPlans
}

// getHighValueCustomersPlan is Scenario E's canonical plan: customers
// with a name whose lifetime value exceeds 5000.
//
//   scan_by_type(Customer)      -> r0
//   scan_by_predicate(hasName)  -> r1
//   hash_join(r0, r1)           -> r2
//   load_values(r2, lifetimeValue) -> r3 (ids + values)
//   filter_gt_f32(r3, 5000)     -> r4
//   project(r4)                 -> out
func getHighValueCustomersPlan() *Plan {
	const (
		customerClass   = TermID(9)
		hasNamePred     = TermID(10)
		lifetimeValPred = TermID(11)
	)
	return &Plan{
		Name: "getHighValueCustomers",
		Ops: []Op{
			{Kind: OpScanByType, TypeID: customerClass, Out: 0},
			{Kind: OpScanByPredicate, PredID: hasNamePred, Out: 1},
			{Kind: OpHashJoin, In1: 0, In2: 1, Out: 2},
			{Kind: OpLoadValues, In1: 2, PredID: lifetimeValPred, Out: 3},
			{Kind: OpFilterGTF32, In1: 3, Threshold: 5000, Out: 4},
			{Kind: OpProject, In1: 4},
		},
	}
}
