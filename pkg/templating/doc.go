/*
Package templating renders placeholder content from filesystem templates.

Templates are ordinary html/template files. Full pages are named "*.tmpl.html"
and shared fragments "*.part.html". On top of a few small helpers for loops
and arithmetic, templates can call markovSentence, markovParagraph and
markovParagraphs to fill pages with text generated from the loaded corpus.
Limits in TemplateConfig keep a template from requesting unbounded output.
*/
package templating
