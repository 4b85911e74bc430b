// Package modelstore keeps speech-model weights available on local disk.
//
// Acquirer.Ensure returns the path of a model's weights, downloading them from
// the published model registry when they are not already cached. Downloads
// stream into a ".partial" file that is resumed with HTTP range requests after
// an interruption, verified against the registry's SHA256 digest, and renamed
// into place only once complete. Concurrent processes serialize on a lock file
// beside the weights.
package modelstore
