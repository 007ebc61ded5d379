package classfile

import (
	"math"

	"jandex/dotted"
)

// Constant-pool tags, per JVMS §4.4.
const (
	tagUTF8               = 1
	tagInteger             = 3
	tagFloat               = 4
	tagLong                = 5
	tagDouble              = 6
	tagClass               = 7
	tagString              = 8
	tagFieldref            = 9
	tagMethodref           = 10
	tagInterfaceMethodref  = 11
	tagNameAndType         = 12
)

// cpEntry holds one constant-pool slot. Only the fields relevant to its
// tag are populated. A tag of 0 marks the unusable second slot reserved
// by a preceding Long or Double entry.
type cpEntry struct {
	tag byte

	utf8 string // tagUTF8

	classNameIdx uint16 // tagClass: index of a UTF8 entry

	stringUTF8Idx uint16 // tagString: index of a UTF8 entry

	intVal    int32   // tagInteger
	floatVal  float32 // tagFloat
	longVal   int64   // tagLong
	doubleVal float64 // tagDouble

	natNameIdx uint16 // tagNameAndType
	natDescIdx uint16 // tagNameAndType

	refClassIdx uint16 // tagFieldref/Methodref/InterfaceMethodref
	refNatIdx   uint16 // tagFieldref/Methodref/InterfaceMethodref
}

// ConstantPool is the decoded constant pool of one class file. Entries
// are 1-indexed per JVMS; index 0 is never valid. It exposes random
// access resolution of UTF-8 strings, class references, and numeric
// constants, with tag checking on every accessor.
type ConstantPool struct {
	entries  []cpEntry // entries[0] is unused
	interner *dotted.Interner

	classNameCache map[uint16]*dotted.Name
}

func (cp *ConstantPool) checkIndex(index uint16) (*cpEntry, error) {
	if int(index) < 1 || int(index) >= len(cp.entries) {
		return nil, malformed("constant pool index %d out of range [1,%d)", index, len(cp.entries))
	}
	e := &cp.entries[index]
	if e.tag == 0 {
		return nil, malformed("constant pool index %d refers to the unusable slot after a Long or Double entry", index)
	}
	return e, nil
}

// ReadUTF8 returns the decoded MUTF-8 string at index.
func (cp *ConstantPool) ReadUTF8(index uint16) (string, error) {
	e, err := cp.checkIndex(index)
	if err != nil {
		return "", err
	}
	if e.tag != tagUTF8 {
		return "", malformed("constant pool index %d: expected UTF8, found tag %d", index, e.tag)
	}
	return e.utf8, nil
}

// ReadClassName resolves a Class constant-pool entry to a component-shared
// dotted Name, converting the slash-delimited internal name found in the
// referenced UTF-8 entry.
func (cp *ConstantPool) ReadClassName(index uint16) (*dotted.Name, error) {
	if n, ok := cp.classNameCache[index]; ok {
		return n, nil
	}
	e, err := cp.checkIndex(index)
	if err != nil {
		return nil, err
	}
	if e.tag != tagClass {
		return nil, malformed("constant pool index %d: expected Class, found tag %d", index, e.tag)
	}
	internal, err := cp.ReadUTF8(e.classNameIdx)
	if err != nil {
		return nil, err
	}
	name := cp.interner.InternInternal(internal)
	cp.classNameCache[index] = name
	return name, nil
}

// ReadInt returns the 32-bit integer value at index.
func (cp *ConstantPool) ReadInt(index uint16) (int32, error) {
	e, err := cp.checkIndex(index)
	if err != nil {
		return 0, err
	}
	if e.tag != tagInteger {
		return 0, malformed("constant pool index %d: expected Integer, found tag %d", index, e.tag)
	}
	return e.intVal, nil
}

// ReadLong returns the 64-bit integer value at index.
func (cp *ConstantPool) ReadLong(index uint16) (int64, error) {
	e, err := cp.checkIndex(index)
	if err != nil {
		return 0, err
	}
	if e.tag != tagLong {
		return 0, malformed("constant pool index %d: expected Long, found tag %d", index, e.tag)
	}
	return e.longVal, nil
}

// ReadFloat returns the 32-bit float value at index.
func (cp *ConstantPool) ReadFloat(index uint16) (float32, error) {
	e, err := cp.checkIndex(index)
	if err != nil {
		return 0, err
	}
	if e.tag != tagFloat {
		return 0, malformed("constant pool index %d: expected Float, found tag %d", index, e.tag)
	}
	return e.floatVal, nil
}

// ReadDouble returns the 64-bit float value at index.
func (cp *ConstantPool) ReadDouble(index uint16) (float64, error) {
	e, err := cp.checkIndex(index)
	if err != nil {
		return 0, err
	}
	if e.tag != tagDouble {
		return 0, malformed("constant pool index %d: expected Double, found tag %d", index, e.tag)
	}
	return e.doubleVal, nil
}

// parseConstantPool reads constant_pool_count-1 entries from c, per
// JVMS §4.4. Long and Double entries occupy two slots; the following
// slot is reserved and left with tag 0.
func parseConstantPool(c *cursor, interner *dotted.Interner) (*ConstantPool, error) {
	count, err := c.u2()
	if err != nil {
		return nil, err
	}

	cp := &ConstantPool{
		entries:        make([]cpEntry, count),
		interner:       interner,
		classNameCache: make(map[uint16]*dotted.Name),
	}

	for i := uint16(1); i < count; i++ {
		tag, err := c.u1()
		if err != nil {
			return nil, err
		}

		entry := cpEntry{tag: tag}
		switch tag {
		case tagUTF8:
			length, err := c.u2()
			if err != nil {
				return nil, err
			}
			raw, err := c.take(int(length))
			if err != nil {
				return nil, err
			}
			s, err := decodeMUTF8(raw)
			if err != nil {
				return nil, err
			}
			entry.utf8 = s

		case tagInteger:
			v, err := c.u4()
			if err != nil {
				return nil, err
			}
			entry.intVal = int32(v)

		case tagFloat:
			v, err := c.u4()
			if err != nil {
				return nil, err
			}
			entry.floatVal = math.Float32frombits(v)

		case tagLong:
			hi, err := c.u4()
			if err != nil {
				return nil, err
			}
			lo, err := c.u4()
			if err != nil {
				return nil, err
			}
			entry.longVal = int64(hi)<<32 | int64(lo)
			cp.entries[i] = entry
			i++ // reserve the following slot
			continue

		case tagDouble:
			hi, err := c.u4()
			if err != nil {
				return nil, err
			}
			lo, err := c.u4()
			if err != nil {
				return nil, err
			}
			bits := uint64(hi)<<32 | uint64(lo)
			entry.doubleVal = math.Float64frombits(bits)
			cp.entries[i] = entry
			i++ // reserve the following slot
			continue

		case tagClass:
			idx, err := c.u2()
			if err != nil {
				return nil, err
			}
			entry.classNameIdx = idx

		case tagString:
			idx, err := c.u2()
			if err != nil {
				return nil, err
			}
			entry.stringUTF8Idx = idx

		case tagFieldref, tagMethodref, tagInterfaceMethodref:
			classIdx, err := c.u2()
			if err != nil {
				return nil, err
			}
			natIdx, err := c.u2()
			if err != nil {
				return nil, err
			}
			entry.refClassIdx = classIdx
			entry.refNatIdx = natIdx

		case tagNameAndType:
			nameIdx, err := c.u2()
			if err != nil {
				return nil, err
			}
			descIdx, err := c.u2()
			if err != nil {
				return nil, err
			}
			entry.natNameIdx = nameIdx
			entry.natDescIdx = descIdx

		default:
			return nil, malformed("unknown constant pool tag %d at entry %d", tag, i)
		}

		cp.entries[i] = entry
	}

	return cp, nil
}
