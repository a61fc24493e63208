/*
Package ofx writes OFX/QFX 1.02 (SGML) statements and reads them back.

The writer emits the line-per-tag SGML dialect that personal finance software imports,
with no closing tags on leaf elements. The reader attempts to parse OFX data which
deviates from the OFX spec by omitting starting or ending tags, and is used to verify
generated documents before they leave the process.

*/
package ofx
