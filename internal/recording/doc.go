// Package recording reads the plain-text exports of a photometry rig:
// channel CSV files, event timestamp files and the TDT Notes.txt block
// header. It also splits long recordings into their acquisition epochs.
package recording
