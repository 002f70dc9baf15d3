package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptIntentClassify classifies a client message into an agent role.
	// The prompt template expects a %s placeholder for the message.
	PromptIntentClassify = "intent_classify"

	// PromptInsightExtract extracts client insights as JSON.
	// The prompt template expects a %s placeholder for the client message.
	PromptInsightExtract = "insight_extract"

	// PromptChatConstraints is the block of general constraints appended to
	// every agent system prompt. No format placeholders.
	PromptChatConstraints = "chat_constraints"
)

// PromptStoreAware is an optional interface for services that can use
// custom prompts. Services implementing it can have their templates
// customised by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable
	// prompts. If not set, the service uses embedded defaults.
	SetPromptStore(store PromptStore)
}
