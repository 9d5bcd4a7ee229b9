/*
Package lipbalm expands XML-like style tags into lipgloss styled text.

The terminal renderer writes its templates with tags named after the styles
registered in pkg/ui/styles:

	<Kind>{{.Kind}}</Kind> <Path>{{escape .Target}}</Path><no-format> (disabled)</no-format>

Render runs the text/template first and then expands the tags. RenderPlain
does the same but strips every tag, which the text renderer uses. ExpandTags
and StripTags work on already executed output.

Styles are applied only when the renderer set with SetDefaultRenderer has a
color profile and NO_COLOR is unset. Content inside <no-format> is shown only
when styles are not applied. Unknown tags keep their content unstyled.

Template data is inserted verbatim, so asset names and paths go through
escape. Input that is not well formed is returned unchanged.
*/
package lipbalm
