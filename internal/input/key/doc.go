// Package key provides abstract keyboard events and key specification
// parsing.
//
// An Event is a virtual key, the character it produced and the active
// modifiers. Hosts translate their native events into Events; the editor
// resolves them to commands through a key table.
//
// # Key Specifications
//
// Bindings are written in either of two forms:
//
//   - "Ctrl+Shift+Z", "Shift+F3", "Alt+Left", "a"
//   - "<C-S-z>", "<S-F3>", "<CR>", "<Esc>"
package key
