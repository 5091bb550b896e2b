package test

import (
	"github.com/cucumber/godog"

	"passguard/test/steps/evaluation"
	"passguard/test/steps/rangeservice"
)

// RegisterSteps registers all step definitions from modular packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Range service setup and privacy assertions
	rangeservice.RegisterSteps(ctx, tc)

	// Evaluation requests and verdict assertions
	evaluation.RegisterSteps(ctx, tc)
}

// RangeStub exposes the scenario's range service to step packages.
func (tc *TestContext) RangeStub() rangeservice.Stub {
	return tc.RangeService
}
