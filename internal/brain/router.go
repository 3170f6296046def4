package brain

// SkillRouter routes a classified intent to a plan. Today it is a thin façade
// over PlanAction; it exists so a session can swap planning strategy without
// touching the brain's orchestration.
type SkillRouter struct {
	plan func(ClassifiedIntent) ActionPlan
}

func NewSkillRouter() SkillRouter {
	return SkillRouter{plan: PlanAction}
}

// NewSkillRouterWith installs a custom planning strategy.
func NewSkillRouterWith(plan func(ClassifiedIntent) ActionPlan) SkillRouter {
	if plan == nil {
		plan = PlanAction
	}
	return SkillRouter{plan: plan}
}

func (r SkillRouter) Route(intent ClassifiedIntent) ActionPlan {
	if r.plan == nil {
		return PlanAction(intent)
	}
	return r.plan(intent)
}
