package enact

// A WorkflowProvider supplies the enactable application of a workflow:
// the single top level enactable whose Play enacts the whole workflow.
type WorkflowProvider interface {
	EnactableApplication() *Enactable
}

// WorkflowProviderFunc adapts a function to the WorkflowProvider
// interface.
type WorkflowProviderFunc func() *Enactable

func (f WorkflowProviderFunc) EnactableApplication() *Enactable {
	return f()
}
