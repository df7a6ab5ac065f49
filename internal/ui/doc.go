// Package ui implements an interactive credit editor using bubbletea's Elm architecture.
//
// The editor renders a [slots.MemoryHost] as a table of slots (entity, credited name, join phrase)
// with a command prompt underneath:
//
//	fill <text>                   parse credit text and fill the slots
//	add <entity>                  append one credit
//	set <index> <field> <value>   set one field (index is 1-based, negative counts from the end)
//	cv                            credit the voice actor of the last character
//	guess <title>                 append the artist guessed from a song title
//	tokens <open>|<close>|<sep>   persist the voice-credit tokens (empty parts are kept)
//	export <path>                 write the slots to csv, md, txt or json
//	clear                         remove every slot
//	quit                          leave the editor
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// The slot table is refreshed on a tick, so slots requested by a fill appear as the host materializes them.
// Progress updates flow through a channel from the [tasks.Editor].
//
// One operation runs at a time; commands entered while one is running are refused.
package ui
