package binloc

import (
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// LocationFileExt is the suffix every binary location file carries.
const LocationFileExt = "-locations.mbl"

// IsLocationFile reports whether name has the location file suffix.
func IsLocationFile(name string) bool {
	return strings.HasSuffix(name, LocationFileExt)
}

var (
	locationMessage protoreflect.MessageDescriptor

	fieldLatitude  protoreflect.FieldDescriptor
	fieldLongitude protoreflect.FieldDescriptor
	fieldTimestamp protoreflect.FieldDescriptor
	fieldTimeZone  protoreflect.FieldDescriptor
)

func init() {
	required := descriptorpb.FieldDescriptorProto_LABEL_REQUIRED
	optional := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL

	fdp := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("servalmaps/location.proto"),
		Package: proto.String("servalmaps"),
		Syntax:  proto.String("proto2"),
		MessageType: []*descriptorpb.DescriptorProto{{
			Name: proto.String("LocationMessage"),
			Field: []*descriptorpb.FieldDescriptorProto{
				field("latitude", 1, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE, required),
				field("longitude", 2, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE, required),
				field("timestamp", 3, descriptorpb.FieldDescriptorProto_TYPE_INT64, required),
				field("time_zone", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING, optional),
			},
		}},
	}

	fd, err := protodesc.NewFile(fdp, new(protoregistry.Files))
	if err != nil {
		panic("binloc: invalid location message descriptor: " + err.Error())
	}
	locationMessage = fd.Messages().ByName("LocationMessage")
	fields := locationMessage.Fields()
	fieldLatitude = fields.ByName("latitude")
	fieldLongitude = fields.ByName("longitude")
	fieldTimestamp = fields.ByName("timestamp")
	fieldTimeZone = fields.ByName("time_zone")
}

func field(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, label descriptorpb.FieldDescriptorProto_Label) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Type:   typ.Enum(),
		Label:  label.Enum(),
	}
}

func newLocationMessage() *dynamicpb.Message {
	return dynamicpb.NewMessage(locationMessage)
}
