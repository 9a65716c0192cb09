package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion must match ENV_SCHEMA_VERSION in the deployed .env
const ExpectedEnvSchemaVersion = "1.0"

type envRule struct {
	key      string
	required func() bool
}

func always() bool { return true }

func rpcLedger() bool {
	return strings.EqualFold(os.Getenv("LEDGER_BACKEND"), LedgerBackendRPC)
}

func discordPartial() bool {
	return (os.Getenv("DISCORD_WEBHOOK_ID") == "") != (os.Getenv("DISCORD_WEBHOOK_TOKEN") == "")
}

var envRules = []envRule{
	{key: "API_KEY", required: always},
	{key: "LEDGER_RPC_URL", required: rpcLedger},
	{key: "LEDGER_CONTRACT_ADDRESS", required: rpcLedger},
	{key: "DISCORD_WEBHOOK_ID", required: discordPartial},
	{key: "DISCORD_WEBHOOK_TOKEN", required: discordPartial},
}

// placeholderValues are the sample values shipped in .env.example
var placeholderValues = map[string]string{
	"API_KEY":     "generate_with_openssl_rand_hex_32",
	"DB_PASSWORD": "change_this_secure_password",
}

// ValidateEnv fails when the environment schema is stale or a variable the
// selected backends depend on is missing
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); v {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set (expected %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s", ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, rule := range envRules {
		if rule.required() && os.Getenv(rule.key) == "" {
			missing = append(missing, rule.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// EnvWarnings lists settings that work but should not reach production
func EnvWarnings() []string {
	var warnings []string
	for key, sample := range placeholderValues {
		if os.Getenv(key) == sample {
			warnings = append(warnings, key+" still has the .env.example value")
		}
	}
	if backend := os.Getenv("LEDGER_BACKEND"); backend == "" || strings.EqualFold(backend, LedgerBackendMemory) {
		warnings = append(warnings, "LEDGER_BACKEND is memory; balances are simulated and lost on restart")
	}
	if !strings.EqualFold(os.Getenv("DB_ENABLED"), "true") {
		warnings = append(warnings, "DB_ENABLED is off; raffle history does not survive a restart")
	}
	return warnings
}
