package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// DefaultPolicies is used when no policy file is configured.
// owner > accountant > viewer
var DefaultPolicies = [][]string{
	{"viewer", "*", "read"},
	{"accountant", "department", "*"},
	{"accountant", "worker", "*"},
	{"accountant", "spending", "*"},
	{"accountant", "revenue", "*"},
	{"owner", "company", "*"},
	{"owner", "payroll", "*"},
	{"owner", "treasury", "*"},
}

var DefaultRoleInheritance = [][]string{
	{"accountant", "viewer"},
	{"owner", "accountant"},
}

// NewEnforcer builds an in-memory enforcer. With an empty policyPath the
// default policies are loaded; otherwise policies come from the CSV file.
func NewEnforcer(policyPath string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	if policyPath != "" {
		return casbin.NewEnforcer(m, policyPath)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if _, err := e.AddPolicies(DefaultPolicies); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicies(DefaultRoleInheritance); err != nil {
		return nil, err
	}
	return e, nil
}
