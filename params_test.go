package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validParams() Params {
	return Params{
		InputNumber:      2,
		OutputNumber:     1,
		Population:       50,
		HiddenActivation: Sigmoid,
		OutputActivation: Sigmoid,
		Mutation: MutationParams{
			WeightPerturbation: 0.8,
			WeightAssign:       0.1,
			AddConnection:      0.05,
			RemoveConnection:   0.01,
			ToggleConnection:   0.01,
			AddNode:            0.03,
			RemoveNode:         0.01,
			WeightMin:          -1,
			WeightMax:          1,
			PerturbMin:         -0.5,
			PerturbMax:         0.5,
		},
		Speciation: SpeciationParams{
			C1:                     1.0,
			C2:                     2.0,
			CompatibilityThreshold: 3.0,
			SurvivalRate:           0.2,
			StagnantMax:            15,
			Elitism:                1,
		},
		Reproduction: ReproductionParams{CrossoverRate: 0.75},
	}
}

func TestValidParamsPass(t *testing.T) {
	p := validParams()
	assert.NoError(t, p.Validate())
}

func TestValidateCatchesEachViolation(t *testing.T) {
	cases := map[string]func(*Params){
		"zero input number":         func(p *Params) { p.InputNumber = 0 },
		"zero output number":        func(p *Params) { p.OutputNumber = 0 },
		"zero population":           func(p *Params) { p.Population = 0 },
		"inverted weight range":     func(p *Params) { p.Mutation.WeightMin = 1; p.Mutation.WeightMax = -1 },
		"inverted perturb range":    func(p *Params) { p.Mutation.PerturbMin = 1; p.Mutation.PerturbMax = -1 },
		"rate below zero":           func(p *Params) { p.Mutation.AddNode = -0.1 },
		"rate above one":            func(p *Params) { p.Reproduction.CrossoverRate = 1.5 },
		"negative c1":               func(p *Params) { p.Speciation.C1 = -1 },
		"negative c2":               func(p *Params) { p.Speciation.C2 = -1 },
		"non-positive threshold":    func(p *Params) { p.Speciation.CompatibilityThreshold = 0 },
		"survival rate zero":        func(p *Params) { p.Speciation.SurvivalRate = 0 },
		"survival rate above one":   func(p *Params) { p.Speciation.SurvivalRate = 1.1 },
		"negative stagnant max":     func(p *Params) { p.Speciation.StagnantMax = -1 },
		"negative elitism":          func(p *Params) { p.Speciation.Elitism = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validParams()
			mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}
