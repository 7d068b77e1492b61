package version

import (
	"encoding/json"
	"runtime"
	rdebug "runtime/debug"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GitCommit            string
	GitBranch            string
	GitSummary           string
	BuildDate            string
	AppVersion           string
	GoVersion            = runtime.Version()
	RetryablehttpVersion = DependencyVersion("go-retryablehttp")
	OidcVersion          = DependencyVersion("go-oidc")
)

type Version struct {
	GitCommit            string `json:"git_commit"`
	GitBranch            string `json:"git_branch"`
	GitSummary           string `json:"git_summary"`
	BuildDate            string `json:"build_date"`
	AppVersion           string `json:"app_version"`
	GoVersion            string `json:"go_version"`
	RetryablehttpVersion string `json:"retryablehttp_version"`
	OidcVersion          string `json:"oidc_version"`
}

func Current() Version {
	return Version{
		GitBranch:            GitBranch,
		GitCommit:            GitCommit,
		GitSummary:           GitSummary,
		BuildDate:            BuildDate,
		AppVersion:           AppVersion,
		GoVersion:            GoVersion,
		RetryablehttpVersion: RetryablehttpVersion,
		OidcVersion:          OidcVersion,
	}
}

// AsMap converts the version info into logger friendly fields.
func (v Version) AsMap() (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	return fields, nil
}

func ExportBuildInfoMetric() {
	buildInfo := promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "esmbridge_build_info",
			Help: "A metric with a constant '1' value, labeled by branch, commit, summary, builddate, version and Go version from which esmbridge was built.",
		},
		[]string{"branch", "commit", "summary", "builddate", "version", "goversion"},
	)

	buildInfo.WithLabelValues(GitBranch, GitCommit, GitSummary, BuildDate, AppVersion, GoVersion).Set(1)
}

// DependencyVersion returns the module version of a dependency baked into the
// build, an empty string when unknown.
func DependencyVersion(path string) string {
	buildInfo, ok := rdebug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, d := range buildInfo.Deps {
		if strings.Contains(d.Path, path) {
			return d.Version
		}
	}

	return ""
}
