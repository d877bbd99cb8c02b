package addresstests

import (
	"github.com/deliveryqa/cart-contract-tests/framework"
)

// RunTestSuite runs every address flow scenario. Scenario IDs start with "address/". If
// env.Browser is nil the whole group is reported as skipped.
func RunTestSuite(
	env Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, env.Config.ScenarioTimeout, func(c *framework.Context) {
		c.Run("address", func(c *framework.Context) {
			if env.Browser == nil {
				c.SkipWithReason("WEBDRIVER_URL is not set")
			}
			t := newTestScope(c, env)

			t.Run("basic", DoBasicTests)
			t.Run("validation", DoValidationTests)
			t.Run("accessibility", DoAccessibilityTests)
			t.Run("usability", DoUsabilityTests)
		})
	})
}
