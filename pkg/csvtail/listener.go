// SPDX-License-Identifier: GPL-3.0-or-later

package csvtail

// Listener receives the column events of a Tailer.
type Listener interface {
	// OnData is called for every value after the header row has been read.
	OnData(id string, value float64)
	// OnDataReset is called once per known header when the input restarts.
	OnDataReset(id string)
}
