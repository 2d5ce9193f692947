package transcriber

import "encoding/binary"

// pcmToFloat32Mono converts 16-bit signed little-endian PCM audio to
// float32 samples normalised to [-1.0, 1.0]. ffmpeg is asked to extract
// mono audio directly (§4.1's audio-extraction step), so this is a
// straight sample conversion rather than a channel down-mix.
func pcmToFloat32Mono(pcm []byte) []float32 {
	n := len(pcm) / 2
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		sample := int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
		samples[i] = float32(sample) / 32768.0
	}
	return samples
}
