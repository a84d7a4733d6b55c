// Package translation talks to the translation backends (Ollama, any
// OpenAI-compatible endpoint, Gemini) behind a common Backend interface, and
// provides the bounded in-memory cache used to avoid repeated requests.
package translation
