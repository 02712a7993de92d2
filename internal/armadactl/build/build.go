package build

// Set at link time with -ldflags "-X github.com/armadaproject/lookout-preempt/internal/armadactl/build.ReleaseVersion=..."
var (
	ReleaseVersion = "UNKNOWN_VERSION"
	GitCommit      = "UNKNOWN_GITCOMMIT"
	GoVersion      = "UNKNOWN_GOVERSION"
	BuildTime      = "UNKNOWN_BUILDTIME"
)
