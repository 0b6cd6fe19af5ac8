package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// NewEnforcer builds the in-memory enforcer with the membership-role
// policy set. Subjects are tenant membership roles, not user ids.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	// Role hierarchy: owner ⊇ admin ⊇ manager ⊇ employee ⊇ viewer
	if _, err := e.AddGroupingPolicies([][]string{
		{"owner", "admin"},
		{"admin", "manager"},
		{"manager", "employee"},
		{"employee", "viewer"},
	}); err != nil {
		return nil, err
	}

	if _, err := e.AddPolicies(policies()); err != nil {
		return nil, err
	}

	return e, nil
}

func policies() [][]string {
	readable := []string{
		"tenant", "employee", "department", "position",
		"leave", "leave_type", "holiday",
		"contract", "time_entry", "timesheet",
	}

	var ps [][]string
	for _, res := range readable {
		ps = append(ps, []string{"viewer", res, "read"})
	}

	ps = append(ps,
		// Self-service writes; ownership rules are enforced in the services.
		[]string{"employee", "leave", "create"},
		[]string{"employee", "leave", "cancel"},
		[]string{"employee", "time_entry", "create"},
		[]string{"employee", "time_entry", "update"},
		[]string{"employee", "timesheet", "create"},
		[]string{"employee", "timesheet", "update"},
		[]string{"employee", "timesheet", "submit"},

		// Approval authority.
		[]string{"manager", "leave", "approve"},
		[]string{"manager", "leave_balance", "read"},
		[]string{"manager", "time_entry", "approve"},
		[]string{"manager", "timesheet", "approve"},

		// Administration.
		[]string{"admin", "tenant", "manage"},
		[]string{"admin", "holiday", "sync"},
		[]string{"admin", "leave_balance", "manage"},
	)

	managed := []string{
		"employee", "department", "position",
		"leave_type", "holiday", "contract",
	}
	for _, res := range managed {
		ps = append(ps,
			[]string{"admin", res, "create"},
			[]string{"admin", res, "update"},
			[]string{"admin", res, "delete"},
		)
	}

	return ps
}
