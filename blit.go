package dicer

// blit copies a rectangular block of src pixels into dst at the
// destination origin (dstX, dstY). src must hold exactly w*h pixels,
// row-major. This is the sole composition operation dicing needs: every
// unit is copied into its atlas slot verbatim, never blended with
// whatever the slot previously held.
func blit(dst *Texture, src []Pixel, dstX, dstY, w, h uint32) {
	for row := uint32(0); row < h; row++ {
		srcOff := row * w
		for col := uint32(0); col < w; col++ {
			dst.set(dstX+col, dstY+row, src[srcOff+col])
		}
	}
}
