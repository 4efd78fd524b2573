// Package msgs defines the messages exchanged between sensor daemons and
// their consumers.
//
// Every message is wrapped in a Typed envelope carrying the type ID and
// a sequence number for matching command replies. The highest bit of the
// type ID tells events from commands, the reply bit marks command replies.
package msgs
