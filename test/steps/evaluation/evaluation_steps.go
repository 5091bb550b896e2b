package evaluation

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

const evaluatePath = "/v1/passwords/evaluate"

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
	GetLastResponseStatus() int
}

// RegisterSteps registers password evaluation step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &evaluationSteps{tc: tc, identity: map[string]string{}}

	// Requests
	ctx.Step(`^a user named "([^"]*)" "([^"]*)" with national id "([^"]*)"$`, steps.userWithIdentity)
	ctx.Step(`^I evaluate the password "([^"]*)"$`, steps.evaluatePassword)
	ctx.Step(`^I evaluate the password "([^"]*)" (\d+) times$`, steps.evaluatePasswordTimes)
	ctx.Step(`^I evaluate an empty password$`, steps.evaluateEmptyPassword)
	ctx.Step(`^I send the evaluation body '(.*)'$`, steps.sendRawBody)
	ctx.Step(`^I check readiness$`, steps.checkReadiness)

	// Assertions
	ctx.Step(`^the response status should be (\d+)$`, steps.responseStatusShouldBe)
	ctx.Step(`^the verdict severity should be "([^"]*)"$`, steps.fieldShouldBe("severity"))
	ctx.Step(`^the verdict message should be "([^"]*)"$`, steps.fieldShouldBe("message"))
	ctx.Step(`^the error code should be "([^"]*)"$`, steps.fieldShouldBe("error"))
	ctx.Step(`^the breach status should be "([^"]*)"$`, steps.fieldShouldBe("breach.status"))
	ctx.Step(`^the breach status should be "([^"]*)" with reason "([^"]*)"$`, steps.breachShouldBe)
	ctx.Step(`^the entropy should be (\d+) bits$`, steps.entropyShouldBe)
	ctx.Step(`^the leakage for "([^"]*)" should be (present|absent)$`, steps.leakageShouldBe)
}

type evaluationSteps struct {
	tc       TestContext
	identity map[string]string
}

func (s *evaluationSteps) userWithIdentity(ctx context.Context, name, lastName, nationalID string) error {
	s.identity = map[string]string{
		"name":        name,
		"last_name":   lastName,
		"national_id": nationalID,
	}
	return nil
}

func (s *evaluationSteps) evaluatePassword(ctx context.Context, password string) error {
	return s.tc.POST(evaluatePath, map[string]interface{}{
		"password": password,
		"identity": s.identity,
	})
}

func (s *evaluationSteps) evaluatePasswordTimes(ctx context.Context, password string, times int) error {
	for i := 0; i < times; i++ {
		if err := s.evaluatePassword(ctx, password); err != nil {
			return err
		}
	}
	return nil
}

func (s *evaluationSteps) evaluateEmptyPassword(ctx context.Context) error {
	return s.evaluatePassword(ctx, "")
}

func (s *evaluationSteps) sendRawBody(ctx context.Context, body string) error {
	return s.tc.POST(evaluatePath, body)
}

func (s *evaluationSteps) checkReadiness(ctx context.Context) error {
	return s.tc.GET("/readyz", nil)
}

func (s *evaluationSteps) responseStatusShouldBe(ctx context.Context, status int) error {
	if got := s.tc.GetLastResponseStatus(); got != status {
		return fmt.Errorf("expected status %d, got %d", status, got)
	}
	return nil
}

func (s *evaluationSteps) fieldShouldBe(field string) func(context.Context, string) error {
	return func(ctx context.Context, want string) error {
		got, err := s.tc.GetResponseField(field)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("expected %s %q, got %v", field, want, got)
		}
		return nil
	}
}

func (s *evaluationSteps) breachShouldBe(ctx context.Context, status, reason string) error {
	if err := s.fieldShouldBe("breach.status")(ctx, status); err != nil {
		return err
	}
	return s.fieldShouldBe("breach.reason")(ctx, reason)
}

func (s *evaluationSteps) entropyShouldBe(ctx context.Context, bits int) error {
	got, err := s.tc.GetResponseField("entropy_bits")
	if err != nil {
		return err
	}
	if n, ok := got.(float64); !ok || int(n) != bits {
		return fmt.Errorf("expected entropy %d bits, got %v", bits, got)
	}
	return nil
}

func (s *evaluationSteps) leakageShouldBe(ctx context.Context, field, state string) error {
	raw, err := s.tc.GetResponseField("leakage")
	if err != nil {
		return err
	}
	entries, ok := raw.([]interface{})
	if !ok || len(entries) != 3 {
		return fmt.Errorf("expected three leakage entries, got %v", raw)
	}
	for _, entry := range entries {
		e, ok := entry.(map[string]interface{})
		if !ok || e["field"] != field {
			continue
		}
		if present := e["present"] == true; present != (state == "present") {
			return fmt.Errorf("expected leakage for %s to be %s", field, state)
		}
		return nil
	}
	return fmt.Errorf("leakage for %s not reported", field)
}
