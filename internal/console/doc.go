// Package console is the terminal surface of ytmp4: localized prompts and
// messages, line input and styled output.
package console
