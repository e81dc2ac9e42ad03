package csvm

var catalogV1 = []*HandlerSignature{
	{
		Name:       "arithmetic",
		FieldTypes: []string{EnumField},
		Static:     0, Instance: 14, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readArithmetic,
	},
	{
		Name:       "newarr",
		FieldTypes: []string{"System.UInt32"},
		ExecuteLocals: []string{
			"System.Object",
			"System.Int32",
			"System.Type",
			"System.IntPtr",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: anyCount,
		Check:  checkNewarr,
		Decode: readNewarr,
	},
	{
		Name:       "box/unbox",
		FieldTypes: []string{EnumField, "System.UInt32"},
		Static:     0, Instance: 2, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readBox,
	},
	{
		Name: "call",
		FieldTypes: []string{
			"System.Collections.Generic.Dictionary`2<System.String,System.Int32>",
			"System.Collections.Generic.Dictionary`2<System.Reflection.MethodInfo,System.Reflection.Emit.DynamicMethod>",
			"System.Reflection.MethodBase",
			"System.UInt32",
			EnumField,
		},
		Static: 2, Instance: 4, Virtual: 2, Ctors: 1,
		Throws: anyCount, Pops: anyCount,
		Decode: readCall,
	},
	{
		Name:       "cast",
		FieldTypes: []string{"System.UInt32", EnumField},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 2,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readCast,
	},
	{
		Name:       "compare",
		FieldTypes: []string{"System.Int32", EnumField},
		Static:     1, Instance: 7, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readCompare,
	},
	{
		Name: "convert",
		FieldTypes: []string{
			EnumField,
			"System.Boolean",
			"System.Boolean",
		},
		Static: 0, Instance: 13, Virtual: 2, Ctors: 1,
		Throws: anyCount, Pops: anyCount,
		Decode: readConvert,
	},
	{
		Name:       "dup/pop",
		FieldTypes: []string{EnumField},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readDup,
	},
	{
		Name: "ldelem/stelem",
		FieldTypes: []string{
			"System.Boolean",
			"System.Boolean",
			EnumField,
			"System.UInt32",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: anyCount, Pops: anyCount,
		Decode: readLdelem,
	},
	{
		Name:       "endfinally",
		FieldTypes: []string{},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     2, Pops: anyCount,
		Check:      checkEndfinally,
		Decode:     readEndfinally,
	},
	{
		Name:       "load/store field",
		FieldTypes: []string{"System.UInt32", EnumField},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readLdfld,
	},
	{
		Name:       "initobj",
		FieldTypes: []string{"System.UInt32"},
		ExecuteLocals: []string{
			"System.Type",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: anyCount,
		Decode: readInitobj,
	},
	{
		Name:       "load local/arg",
		FieldTypes: []string{"System.Boolean", "System.UInt16"},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readLdloc,
	},
	{
		Name:       "load local/arg address",
		FieldTypes: []string{"System.Boolean", "System.UInt32"},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readLdloca,
	},
	{
		Name:       "ldelema",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Int32",
			"System.Array",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: anyCount, Pops: anyCount,
		Decode: readLdelema,
	},
	{
		Name:       "ldlen",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Array",
			"System.Object",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: anyCount, Pops: anyCount,
		Decode: readLdlen,
	},
	{
		Name:       "ldobj",
		FieldTypes: []string{},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     1, Pops: 1,
		Decode:     readLdobj,
	},
	{
		Name:       "ldstr",
		FieldTypes: []string{"System.String"},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readLdstr,
	},
	{
		Name:       "ldtoken",
		FieldTypes: []string{"System.UInt32"},
		ExecuteLocals: []string{
			"System.Object",
			"System.Reflection.MemberInfo",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: anyCount, Pops: anyCount,
		Check:  checkLdtoken,
		Decode: readLdtoken,
	},
	{
		Name:       "leave",
		FieldTypes: []string{"System.Int32"},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Check:      checkLeave,
		Decode:     readLeave,
	},
	{
		Name:       "load constant",
		FieldTypes: []string{"System.Object"},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readLdc,
	},
	{
		Name: "load func",
		FieldTypes: []string{
			EnumField,
			"System.UInt32",
			"System.UInt32",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: anyCount, Pops: anyCount,
		Decode: readLdftn,
	},
	{
		Name:       "logical",
		FieldTypes: []string{EnumField},
		Static:     0, Instance: 6, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readLogical,
	},
	{
		Name:       "nop",
		FieldTypes: []string{},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Check:      checkNop,
		Decode:     readNop,
	},
	{
		Name:       "ret",
		FieldTypes: []string{"System.UInt32"},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Check:      checkRet,
		Decode:     readRet,
	},
	{
		Name:       "rethrow",
		FieldTypes: []string{},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     1, Pops: anyCount,
		Check:      checkRethrow,
		Decode:     readRethrow,
	},
	{
		Name: "store local/arg",
		FieldTypes: []string{
			"System.Boolean",
			"System.UInt16",
			EnumField,
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: anyCount, Pops: anyCount,
		Decode: readStloc,
	},
	{
		Name:       "stobj",
		FieldTypes: []string{},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     1, Pops: 2,
		Decode:     readStobj,
	},
	{
		Name:       "switch",
		FieldTypes: []string{"System.UInt32", "System.Int32[]"},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readSwitch,
	},
	{
		Name:       "throw",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Object",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 2, Pops: anyCount,
		Check:  checkThrow,
		Decode: readThrow,
	},
	{
		Name:       "neg/not",
		FieldTypes: []string{EnumField},
		Static:     0, Instance: 2, Virtual: 2, Ctors: 1,
		Throws:     anyCount, Pops: anyCount,
		Decode:     readNeg,
	},
}

var catalogV2 = []*HandlerSignature{
	{
		Name:       "arithmetic",
		FieldTypes: []string{EnumField, "System.Boolean"},
		ExecuteLocals: []string{
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 14, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 2,
		Decode: readArithmetic,
	},
	{
		Name: "box/unbox",
		FieldTypes: []string{
			EnumField,
			"System.UInt32",
			EnumField,
		},
		ExecuteLocals: []string{
			"System.Object",
			"System.Type",
			"System.Boolean",
		},
		Static: 0, Instance: 2, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 2,
		Decode: readBox,
	},
	{
		Name: "call",
		FieldTypes: []string{
			"System.Collections.Generic.Dictionary`2<System.String,System.Int32>",
			"System.Collections.Generic.Dictionary`2<System.Reflection.MethodInfo,System.Reflection.Emit.DynamicMethod>",
			"System.Reflection.MethodBase",
			"System.UInt32",
			EnumField,
			EnumField,
			"System.Boolean",
		},
		ExecuteLocals: []string{
			"System.Boolean",
			"System.Object",
			"System.Reflection.ParameterInfo[]",
			"System.Int32",
			"System.Object[]",
			"System.Reflection.ConstructorInfo",
			"System.Reflection.MethodInfo",
		},
		Static: 2, Instance: 4, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 2,
		Decode: readCall,
	},
	{
		Name: "cast",
		FieldTypes: []string{
			"System.UInt32",
			EnumField,
			"System.Reflection.MethodBase",
		},
		ExecuteLocals: []string{
			"System.Type",
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 2,
		Throws: 1, Pops: 1,
		Decode: readCast,
	},
	{
		Name:       "compare",
		FieldTypes: []string{"System.Int32", EnumField},
		ExecuteLocals: []string{
			"System.Int32",
			"System.Object",
			"System.Boolean",
		},
		Static: 1, Instance: 7, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 2,
		Decode: readCompare,
	},
	{
		Name: "convert",
		FieldTypes: []string{
			EnumField,
			"System.Boolean",
			"System.Boolean",
			"System.UInt32",
		},
		ExecuteLocals: []string{
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 13, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readConvert,
	},
	{
		Name:       "dup/pop",
		FieldTypes: []string{EnumField},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     0, Pops: 1,
		Decode:     readDup,
	},
	{
		Name:       "endfinally",
		FieldTypes: []string{"System.UInt32"},
		ExecuteLocals: []string{
			"System.Int32",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 2, Pops: 0,
		Check:  checkEndfinally,
		Decode: readEndfinally,
	},
	{
		Name:       "initobj",
		FieldTypes: []string{"System.UInt32", "System.Boolean"},
		ExecuteLocals: []string{
			"System.Type",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 1,
		Decode: readInitobj,
	},
	{
		Name: "ldelem/stelem",
		FieldTypes: []string{
			"System.Boolean",
			"System.Boolean",
			EnumField,
			"System.UInt32",
		},
		ExecuteLocals: []string{
			"System.Int32",
			"System.Array",
			"System.Object",
			"System.Type",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 5,
		Decode: readLdelem,
	},
	{
		Name:       "ldelema",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Int32",
			"System.Array",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 2,
		Decode: readLdelema,
	},
	{
		Name:       "ldlen",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Array",
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readLdlen,
	},
	{
		Name:       "ldobj",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 1,
		Decode: readLdobj,
	},
	{
		Name:       "ldstr",
		FieldTypes: []string{"System.String"},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     0, Pops: 0,
		Decode:     readLdstr,
	},
	{
		Name:       "ldtoken",
		FieldTypes: []string{"System.UInt32"},
		ExecuteLocals: []string{
			"System.Object",
			"System.Reflection.MemberInfo",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 0,
		Check:  checkLdtoken,
		Decode: readLdtoken,
	},
	{
		Name:       "leave",
		FieldTypes: []string{"System.Int32"},
		ExecuteLocals: []string{
			"System.Int32",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 0,
		Check:  checkLeave,
		Decode: readLeave,
	},
	{
		Name: "load constant",
		FieldTypes: []string{
			"System.Object",
			"System.Boolean",
			"System.UInt16",
		},
		ExecuteLocals: []string{
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readLdc,
	},
	{
		Name: "load func",
		FieldTypes: []string{
			EnumField,
			"System.UInt32",
			"System.UInt32",
		},
		ExecuteLocals: []string{
			"System.Reflection.MethodBase",
			"System.IntPtr",
			"System.Type",
			"System.Delegate",
			"System.RuntimeMethodHandle",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readLdftn,
	},
	{
		Name: "load local/arg",
		FieldTypes: []string{
			"System.Boolean",
			"System.UInt16",
			"System.Boolean",
		},
		ExecuteLocals: []string{
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 0,
		Decode: readLdloc,
	},
	{
		Name:       "load local/arg address",
		FieldTypes: []string{"System.Boolean", "System.UInt32"},
		ExecuteLocals: []string{
			"System.Array",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 0,
		Decode: readLdloca,
	},
	{
		Name:       "load/store field",
		FieldTypes: []string{"System.UInt32", EnumField},
		ExecuteLocals: []string{
			"System.Reflection.FieldInfo",
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 4,
		Decode: readLdfld,
	},
	{
		Name:       "logical",
		FieldTypes: []string{EnumField, EnumField},
		ExecuteLocals: []string{
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 6, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 2,
		Decode: readLogical,
	},
	{
		Name:       "neg/not",
		FieldTypes: []string{EnumField},
		ExecuteLocals: []string{
			"System.Object",
		},
		Static: 0, Instance: 2, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 1,
		Decode: readNeg,
	},
	{
		Name:       "newarr",
		FieldTypes: []string{"System.UInt32"},
		ExecuteLocals: []string{
			"System.Object",
			"System.Int32",
			"System.Type",
			"System.Boolean",
			"System.IntPtr",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Check:  checkNewarr,
		Decode: readNewarr,
	},
	{
		Name:       "nop",
		FieldTypes: []string{},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     0, Pops: 0,
		Check:      checkNop,
		Decode:     readNop,
	},
	{
		Name:       "ret",
		FieldTypes: []string{"System.UInt32"},
		ExecuteLocals: []string{
			"System.Reflection.MethodInfo",
			"System.Type",
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Check:  checkRet,
		Decode: readRet,
	},
	{
		Name:       "rethrow",
		FieldTypes: []string{},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     1, Pops: 0,
		Check:      checkRethrow,
		Decode:     readRethrow,
	},
	{
		Name:       "stobj",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 2,
		Decode: readStobj,
	},
	{
		Name: "store local/arg",
		FieldTypes: []string{
			"System.Boolean",
			"System.UInt16",
			EnumField,
		},
		ExecuteLocals: []string{
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readStloc,
	},
	{
		Name:       "switch",
		FieldTypes: []string{"System.UInt32", "System.Int32[]"},
		ExecuteLocals: []string{
			"System.Int32",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readSwitch,
	},
	{
		Name:       "throw",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 2, Pops: 1,
		Check:  checkThrow,
		Decode: readThrow,
	},
}

var catalogV3 = []*HandlerSignature{
	{
		Name:       "arithmetic",
		FieldTypes: []string{EnumField, "System.Double"},
		ExecuteLocals: []string{
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 14, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 2,
		Decode: readArithmetic,
	},
	{
		Name: "box/unbox",
		FieldTypes: []string{
			EnumField,
			"System.UInt32",
			EnumField,
		},
		ExecuteLocals: []string{
			"System.Object",
			"System.Type",
			"System.Boolean",
		},
		Static: 0, Instance: 2, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 2,
		Decode: readBox,
	},
	{
		Name: "call",
		FieldTypes: []string{
			"System.Collections.Generic.Dictionary`2<System.Reflection.Module,System.Collections.Generic.Dictionary`2<System.Int32,System.Reflection.MethodBase>>",
			"System.Collections.Generic.Dictionary`2<System.String,System.Int32>",
			"System.Collections.Generic.Dictionary`2<System.Reflection.MethodInfo,System.Reflection.Emit.DynamicMethod>",
			"System.Reflection.MethodBase",
			"System.UInt32",
			EnumField,
			EnumField,
			"System.Boolean",
		},
		ExecuteLocals: []string{
			"System.Boolean",
			"System.Reflection.Module",
			"System.Collections.Generic.Dictionary`2<System.Int32,System.Reflection.MethodBase>",
			"System.Object",
			"System.Reflection.ParameterInfo[]",
			"System.Int32",
			"System.Object[]",
			"System.Reflection.ConstructorInfo",
			"System.Reflection.MethodInfo",
			"System.Collections.Generic.Dictionary`2<System.Reflection.Module,System.Collections.Generic.Dictionary`2<System.Int32,System.Reflection.MethodBase>>",
		},
		Static: 2, Instance: 4, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 2,
		Decode: readCall,
	},
	{
		Name: "cast",
		FieldTypes: []string{
			"System.UInt32",
			EnumField,
			"System.Reflection.MethodBase",
		},
		ExecuteLocals: []string{
			"System.Type",
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 2,
		Throws: 1, Pops: 1,
		Decode: readCast,
	},
	{
		Name:       "compare",
		FieldTypes: []string{"System.Int32", EnumField},
		ExecuteLocals: []string{
			"System.Int32",
			"System.Object",
			"System.Boolean",
		},
		Static: 1, Instance: 7, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 2,
		Decode: readCompare,
	},
	{
		Name: "convert",
		FieldTypes: []string{
			EnumField,
			"System.Boolean",
			"System.Boolean",
			"System.UInt16",
		},
		ExecuteLocals: []string{
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 13, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readConvert,
	},
	{
		Name:       "dup/pop",
		FieldTypes: []string{EnumField},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     0, Pops: 1,
		Decode:     readDup,
	},
	{
		Name:       "endfinally",
		FieldTypes: []string{"System.UInt32"},
		ExecuteLocals: []string{
			"System.Int32",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 2, Pops: 0,
		Check:  checkEndfinally,
		Decode: readEndfinally,
	},
	{
		Name:       "initobj",
		FieldTypes: []string{"System.UInt32", "System.Double"},
		ExecuteLocals: []string{
			"System.Type",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 1,
		Decode: readInitobj,
	},
	{
		Name: "ldelem/stelem",
		FieldTypes: []string{
			"System.Boolean",
			"System.Boolean",
			EnumField,
			"System.UInt32",
		},
		ExecuteLocals: []string{
			"System.Int32",
			"System.Array",
			"System.Object",
			"System.Type",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 5,
		Decode: readLdelem,
	},
	{
		Name:       "ldelema",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Int32",
			"System.Array",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 2,
		Decode: readLdelema,
	},
	{
		Name:       "ldlen",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Array",
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readLdlen,
	},
	{
		Name:       "ldobj",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 1,
		Decode: readLdobj,
	},
	{
		Name:       "ldstr",
		FieldTypes: []string{"System.String"},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     0, Pops: 0,
		Decode:     readLdstr,
	},
	{
		Name:       "ldtoken",
		FieldTypes: []string{"System.UInt32"},
		ExecuteLocals: []string{
			"System.Object",
			"System.Reflection.MemberInfo",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 0,
		Check:  checkLdtoken,
		Decode: readLdtoken,
	},
	{
		Name:       "leave",
		FieldTypes: []string{"System.Int32"},
		ExecuteLocals: []string{
			"System.Int32",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 0,
		Check:  checkLeave,
		Decode: readLeave,
	},
	{
		Name: "load constant",
		FieldTypes: []string{
			"System.Object",
			"System.Double",
			"System.UInt16",
		},
		ExecuteLocals: []string{
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readLdc,
	},
	{
		Name: "load func",
		FieldTypes: []string{
			EnumField,
			"System.UInt32",
			"System.UInt32",
		},
		ExecuteLocals: []string{
			"System.Reflection.MethodBase",
			"System.IntPtr",
			"System.Type",
			"System.Delegate",
			"System.RuntimeMethodHandle",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readLdftn,
	},
	{
		Name: "load local/arg",
		FieldTypes: []string{
			"System.Boolean",
			"System.UInt16",
			"System.UInt32",
		},
		ExecuteLocals: []string{
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 0,
		Decode: readLdloc,
	},
	{
		Name:       "load local/arg address",
		FieldTypes: []string{"System.Boolean", "System.UInt32"},
		ExecuteLocals: []string{
			"System.Array",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 0,
		Decode: readLdloca,
	},
	{
		Name:       "load/store field",
		FieldTypes: []string{"System.UInt32", EnumField},
		ExecuteLocals: []string{
			"System.Reflection.FieldInfo",
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 4,
		Decode: readLdfld,
	},
	{
		Name:       "logical",
		FieldTypes: []string{EnumField, EnumField},
		ExecuteLocals: []string{
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 6, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 2,
		Decode: readLogical,
	},
	{
		Name:       "neg/not",
		FieldTypes: []string{EnumField},
		ExecuteLocals: []string{
			"System.Object",
		},
		Static: 0, Instance: 2, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 1,
		Decode: readNeg,
	},
	{
		Name:       "newarr",
		FieldTypes: []string{"System.UInt32"},
		ExecuteLocals: []string{
			"System.Object",
			"System.Int32",
			"System.Type",
			"System.Boolean",
			"System.IntPtr",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Check:  checkNewarr,
		Decode: readNewarr,
	},
	{
		Name:       "nop",
		FieldTypes: []string{},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     0, Pops: 0,
		Check:      checkNop,
		Decode:     readNop,
	},
	{
		Name:       "ret",
		FieldTypes: []string{"System.UInt32"},
		ExecuteLocals: []string{
			"System.Reflection.MethodInfo",
			"System.Type",
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Check:  checkRet,
		Decode: readRet,
	},
	{
		Name:       "rethrow",
		FieldTypes: []string{},
		Static:     0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws:     1, Pops: 0,
		Check:      checkRethrow,
		Decode:     readRethrow,
	},
	{
		Name:       "stobj",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 1, Pops: 2,
		Decode: readStobj,
	},
	{
		Name: "store local/arg",
		FieldTypes: []string{
			"System.Boolean",
			"System.UInt16",
			EnumField,
		},
		ExecuteLocals: []string{
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readStloc,
	},
	{
		Name:       "switch",
		FieldTypes: []string{"System.UInt32", "System.Int32[]"},
		ExecuteLocals: []string{
			"System.Int32",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 0, Pops: 1,
		Decode: readSwitch,
	},
	{
		Name:       "throw",
		FieldTypes: []string{},
		ExecuteLocals: []string{
			"System.Object",
			"System.Boolean",
		},
		Static: 0, Instance: 0, Virtual: 2, Ctors: 1,
		Throws: 2, Pops: 1,
		Check:  checkThrow,
		Decode: readThrow,
	},
}

