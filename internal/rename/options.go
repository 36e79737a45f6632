package rename

// Options is the validated intent of a single invocation.
type Options struct {
	DryRun       bool
	UpdateRemote bool
	RemoteName   string
	TargetName   string
}
