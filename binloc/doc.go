// Package binloc reads and writes binary location files.
//
// A location file is a sequence of protobuf messages, each preceded by its
// varint encoded length (the framing produced by writeDelimitedTo in the
// protobuf runtimes). Each message is a servalmaps.LocationMessage:
//
//	message LocationMessage {
//	  required double latitude  = 1;
//	  required double longitude = 2;
//	  required int64  timestamp = 3; // epoch milliseconds, UTC
//	  optional string time_zone = 4; // IANA zone name
//	}
//
// The schema is built at init time from a descriptor, so no generated code
// is needed. Messages are decoded with dynamicpb.
package binloc
