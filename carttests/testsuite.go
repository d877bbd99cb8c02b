package carttests

import (
	"github.com/deliveryqa/cart-contract-tests/framework"
)

// RunTestSuite runs every cart scenario. Scenario IDs start with "cart/".
func RunTestSuite(
	env Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, env.Config.ScenarioTimeout, func(c *framework.Context) {
		c.Run("cart", func(c *framework.Context) {
			t := newTestScope(c, env)

			t.Run("basic", DoBasicTests)
			t.Run("create", DoCreateTests)
			t.Run("validation", DoValidationTests)
			t.Run("errors", DoErrorTests)
			t.Run("advanced", DoAdvancedTests)
			t.Run("delete", DoDeleteTests)
			t.Run("performance", DoPerformanceTests)
			t.Run("properties", DoPropertyTests)
		})
	})
}
