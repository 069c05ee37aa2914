// Package renamer rewrites deprecated command and parameter names in user
// script files.
//
// Two static maps drive it: ParameterRenames and CommandRenames. Both are
// compiled into whole-word regular expressions once at process start and
// applied in deterministic order, so a rewritten file contains no deprecated
// token as a whole word and a second pass changes nothing.
//
// Files are read and written in a chosen text encoding (utf8, utf8bom,
// unicode, bigendianunicode, ascii, ansi) and only rewritten when a rename
// actually matched.
package renamer
