/*
Package dds decodes DDS (DirectDraw Surface) texture containers.

A container holds one or more subresources addressed by array element, mip
level and depth slice (cube maps expose six faces per array element). Parse
reads the primary header and the optional DX10 header, resolves the storage
format from the legacy pixel-format catalog or the DXGI format id, and
derives the frame count. Locate computes the byte offset and block grid of any
subresource, and SubresourceDecoder copies raw blocks or decoded pixels out of
it. BC1, BC2 and BC3 blocks are decompressed in-package; unsigned BC4 and BC5
go through the bcn decoder.

Enfusion EDDS files, which keep the DDS headers but store each mip level as a
COPY or LZ4 block (smallest level first), are inflated to plain DDS by
InflateEDDS. The file helpers do this transparently.
*/
package dds
