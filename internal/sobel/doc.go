// Package sobel computes normalized Sobel gradient-magnitude maps.
//
// # Algorithm
//
// For every pixel the 3x3 neighborhood is convolved with the horizontal and
// vertical Sobel kernels:
//
//	Kx = -1  0  1      Ky = -1 -2 -1
//	     -2  0  2            0  0  0
//	     -1  0  1            1  2  1
//
// The nine weighted terms are accumulated in row-major window order and
// combined as magnitude = sqrt(Gx² + Gy²). Neighbors outside the image count
// as zero (zero padding), so the image border usually shows a strong edge.
//
// Once every magnitude is known the map is normalized against its global
// maximum Gmax and quantized to 8 bits:
//
//	out = floor(G / Gmax * 255)
//
// When Gmax == 0 every output sample is 0. Under zero padding a flat non-zero
// image larger than one pixel still has gradient along its border, so only
// its interior comes out as 0.
//
// The input image is never modified and the output shares no memory with it.
package sobel
