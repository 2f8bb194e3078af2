package server

import "github.com/gcloud-datastore/implicitenv/internal/runtime"

// Instructions is the MCP instructions message injected into the system prompt.
const Instructions = `implicitenv infers the Google Cloud Datastore dataset ID from the environment. Call environment_detect to run detection, environment_show to read the current dataset and connection state, and environment_set_dataset to override it. Read implicitenv://dataset for the current dataset ID.`

// BuildInstructions appends the detected hosting platform to Instructions.
func BuildInstructions(rtInfo runtime.Info) string {
	if !rtInfo.OnAppEngine {
		return Instructions
	}
	s := Instructions + "\n\nRunning on App Engine"
	if rtInfo.Environment != "" {
		s += " (" + rtInfo.Environment + ")"
	}
	if rtInfo.Service != "" {
		s += ", service " + rtInfo.Service
	}
	if rtInfo.Version != "" {
		s += ", version " + rtInfo.Version
	}
	return s + "."
}
