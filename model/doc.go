// Package model provides the chat and image model catalogue.
//
// Models know their provider, which lets the client route a request to the
// right backend, and carry list pricing for run cost estimates:
//
//	m, ok := model.LookupChat(ai.ProviderOpenAI, "")  // provider default
//	cost := m.Cost(usage)
//
// Identifiers missing from the catalogue are still accepted by LookupChat and
// LookupImage; they report zero cost.
package model
