package cil

import "fmt"

// ElementType is an ECMA-335 signature element type.
type ElementType uint8

const (
	ElementEnd         ElementType = 0x00
	ElementVoid        ElementType = 0x01
	ElementBoolean     ElementType = 0x02
	ElementChar        ElementType = 0x03
	ElementI1          ElementType = 0x04
	ElementU1          ElementType = 0x05
	ElementI2          ElementType = 0x06
	ElementU2          ElementType = 0x07
	ElementI4          ElementType = 0x08
	ElementU4          ElementType = 0x09
	ElementI8          ElementType = 0x0a
	ElementU8          ElementType = 0x0b
	ElementR4          ElementType = 0x0c
	ElementR8          ElementType = 0x0d
	ElementString      ElementType = 0x0e
	ElementPtr         ElementType = 0x0f
	ElementByRef       ElementType = 0x10
	ElementValueType   ElementType = 0x11
	ElementClass       ElementType = 0x12
	ElementVar         ElementType = 0x13
	ElementArray       ElementType = 0x14
	ElementGenericInst ElementType = 0x15
	ElementTypedByRef  ElementType = 0x16
	ElementValueArray  ElementType = 0x17
	ElementI           ElementType = 0x18
	ElementU           ElementType = 0x19
	ElementR           ElementType = 0x1a
	ElementFnPtr       ElementType = 0x1b
	ElementObject      ElementType = 0x1c
	ElementSZArray     ElementType = 0x1d
	ElementMVar        ElementType = 0x1e
	ElementCModReqd    ElementType = 0x1f
	ElementCModOpt     ElementType = 0x20
	ElementInternal    ElementType = 0x21
	ElementModule      ElementType = 0x3f
	ElementSentinel    ElementType = 0x41
	ElementPinned      ElementType = 0x45
)

var elementTypeNames = map[ElementType]string{
	ElementEnd:         "End",
	ElementVoid:        "Void",
	ElementBoolean:     "Boolean",
	ElementChar:        "Char",
	ElementI1:          "I1",
	ElementU1:          "U1",
	ElementI2:          "I2",
	ElementU2:          "U2",
	ElementI4:          "I4",
	ElementU4:          "U4",
	ElementI8:          "I8",
	ElementU8:          "U8",
	ElementR4:          "R4",
	ElementR8:          "R8",
	ElementString:      "String",
	ElementPtr:         "Ptr",
	ElementByRef:       "ByRef",
	ElementValueType:   "ValueType",
	ElementClass:       "Class",
	ElementVar:         "Var",
	ElementArray:       "Array",
	ElementGenericInst: "GenericInst",
	ElementTypedByRef:  "TypedByRef",
	ElementValueArray:  "ValueArray",
	ElementI:           "I",
	ElementU:           "U",
	ElementR:           "R",
	ElementFnPtr:       "FnPtr",
	ElementObject:      "Object",
	ElementSZArray:     "SZArray",
	ElementMVar:        "MVar",
	ElementCModReqd:    "CModReqd",
	ElementCModOpt:     "CModOpt",
	ElementInternal:    "Internal",
	ElementModule:      "Module",
	ElementSentinel:    "Sentinel",
	ElementPinned:      "Pinned",
}

func (e ElementType) String() string {
	if name, ok := elementTypeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("ElementType(0x%02x)", uint8(e))
}

// IsPrimitive reports whether the element type is a core library primitive
// (including String, Object, TypedReference and the native integers).
func (e ElementType) IsPrimitive() bool {
	switch e {
	case ElementVoid, ElementBoolean, ElementChar, ElementI1, ElementU1, ElementI2, ElementU2,
		ElementI4, ElementU4, ElementI8, ElementU8, ElementR4, ElementR8, ElementString,
		ElementTypedByRef, ElementI, ElementU, ElementObject:
		return true
	}
	return false
}
