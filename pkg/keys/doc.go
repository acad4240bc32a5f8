// Package keys turns a virtual key code and hardware scan code into a stable
// display name. Resolution walks a fixed chain: the static key catalog, the
// active layout's character translation, the layout's key name text, and
// finally a "VK_XX" placeholder, so every input yields a non-empty name.
//
// Live layout state sits behind LayoutContext. SystemLayout reads it from the
// OS on Windows; StaticLayout provides table-driven en-US, fr-FR and de-DE
// layouts for other platforms and for tests.
package keys
