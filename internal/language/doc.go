// Package language normalizes user-supplied language hints to the codes the
// speech model understands and exposes the model's language-token order.
//
// Inputs may be ISO 639-1 codes, ISO 639-2/3 codes, BCP 47 tags, or English
// language names. Parsing of standard codes is delegated to golang.org/x/text.
package language
