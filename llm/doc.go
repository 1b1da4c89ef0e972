// Package llm defines the conversation schema and the Completer interface
// the swarm engine dispatches against, plus adapters for OpenAI, Anthropic,
// and Google Gemini built on the official SDKs.
//
// Adapters disable SDK-internal retries: the swarm engine's worker state
// machine owns the retry policy, so an adapter reports each failure exactly
// once, as a structured error from the errors package. Classification is by
// HTTP status (401/403 unauthorized, 402 quota, 429 rate limited, 5xx server
// error) or transport condition (deadline, cancellation, connection failure),
// never by matching message text.
//
// MockCompleter and CompleterFunc provide stub completion services for tests
// and examples.
package llm
