// Package browser drives a credit editor page over the Chrome DevTools protocol.
//
// [Editor] implements [slots.Host] and [slots.Waiter] against the page's artist credit editor:
// inputs under the container are read as a flat list grouped three per slot (entity, display name,
// connective), the add button requests a new slot, and values are written through the native
// HTMLInputElement setter followed by bubbling input and change events so the page's own
// bindings pick them up.
//
// [Editor.Links] scans rendered entity links, and [Editor.Locate] resolves a name against them,
// making the page itself a [services.Locator].
package browser
