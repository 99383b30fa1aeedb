package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/bl4ck0w1/seclynx/internal/platform"
	"github.com/bl4ck0w1/seclynx/internal/tools"
	"github.com/bl4ck0w1/seclynx/pkg/models"
	"github.com/bl4ck0w1/seclynx/pkg/utils"
)

// errToolFailed keeps the process exit code non-zero after the failure
// envelope has already been printed.
var errToolFailed = errors.New("tool invocation failed")

func buildClient(metrics *utils.MetricsCollector) (*platform.Client, error) {
	creds := platform.Credentials{
		APIID:  viper.GetString("api.id"),
		APIKey: viper.GetString("api.key"),
	}
	if !creds.Valid() {
		return nil, fmt.Errorf("missing API credentials: set SECLYNX_API_ID and SECLYNX_API_KEY")
	}

	timeout, err := utils.ParseDurationExtended(viper.GetString("api.timeout"))
	if err != nil {
		timeout = 0
	}

	return platform.NewClient(platform.Config{
		BaseURL:     viper.GetString("api.base_url"),
		Credentials: creds,
		Timeout:     timeout,
		RateLimit:   rate.Limit(viper.GetFloat64("api.rate_limit")),
	}, logrus.StandardLogger(), metrics)
}

func buildToolset(metrics *utils.MetricsCollector) (*tools.Toolset, error) {
	client, err := buildClient(metrics)
	if err != nil {
		return nil, err
	}
	return tools.NewToolset(client, logrus.StandardLogger(), metrics), nil
}

// printResult writes the envelope to stdout and maps failure onto the exit
// code.
func printResult(res tools.Result) error {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	if !res.Success {
		return errToolFailed
	}
	return nil
}

// filterFlags registers the findings filter flags shared by the findings
// commands.
func filterFlags(cmd *cobra.Command) {
	cmd.Flags().String("scan-type", "", "restrict to one scan type (STATIC, DYNAMIC, MANUAL, SCA)")
	cmd.Flags().String("severity", "", "exact severity 0-5")
	cmd.Flags().String("severity-gte", "", "minimum severity 0-5")
	cmd.Flags().IntSlice("cwe", nil, "CWE ids to filter by")
	cmd.Flags().String("cvss", "", "exact CVSS score")
	cmd.Flags().String("cvss-gte", "", "minimum CVSS score")
	cmd.Flags().String("cve", "", "CVE identifier to filter by")
	cmd.Flags().String("context", "", "sandbox GUID to query instead of the policy context")
	cmd.Flags().Bool("include-annotations", false, "include triage annotations")
	cmd.Flags().Bool("include-expired", false, "include findings past their grace period")
	cmd.Flags().Bool("new-only", false, "only findings first seen in the latest scan")
	cmd.Flags().Bool("policy-violation-only", false, "only findings violating policy")
	cmd.Flags().String("sca-dependency-mode", "", "SCA dependency mode (DIRECT or TRANSITIVE)")
	cmd.Flags().String("sca-scan-mode", "", "SCA scan mode")
}

// filtersFromFlags builds a FilterSet from the flags registered by
// filterFlags. String-typed numeric flags keep "absent" distinguishable
// from zero.
func filtersFromFlags(cmd *cobra.Command) (models.FilterSet, error) {
	f := models.FilterSet{}

	if raw, _ := cmd.Flags().GetString("scan-type"); raw != "" {
		st := models.ScanType(strings.ToUpper(raw))
		if !st.Valid() {
			return f, fmt.Errorf("invalid scan type %q (expected STATIC, DYNAMIC, MANUAL or SCA)", raw)
		}
		f.ScanType = st
	}

	var err error
	if f.Severity, err = intFlag(cmd, "severity"); err != nil {
		return f, err
	}
	if f.SeverityGTE, err = intFlag(cmd, "severity-gte"); err != nil {
		return f, err
	}
	if f.CVSS, err = floatFlag(cmd, "cvss"); err != nil {
		return f, err
	}
	if f.CVSSGTE, err = floatFlag(cmd, "cvss-gte"); err != nil {
		return f, err
	}

	f.CWE, _ = cmd.Flags().GetIntSlice("cwe")
	f.CVE, _ = cmd.Flags().GetString("cve")
	f.Context, _ = cmd.Flags().GetString("context")
	f.IncludeAnnotations, _ = cmd.Flags().GetBool("include-annotations")
	f.IncludeExpired, _ = cmd.Flags().GetBool("include-expired")
	f.NewOnly, _ = cmd.Flags().GetBool("new-only")
	f.PolicyViolation, _ = cmd.Flags().GetBool("policy-violation-only")

	if raw, _ := cmd.Flags().GetString("sca-dependency-mode"); raw != "" {
		f.SCADependencyMode = strings.ToUpper(raw)
	}
	if raw, _ := cmd.Flags().GetString("sca-scan-mode"); raw != "" {
		f.SCAScanMode = strings.ToUpper(raw)
	}

	return f, nil
}

func intFlag(cmd *cobra.Command, name string) (*int, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid value for --%s: %q", name, raw)
	}
	return &v, nil
}

func floatFlag(cmd *cobra.Command, name string) (*float64, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid value for --%s: %q", name, raw)
	}
	return &v, nil
}
