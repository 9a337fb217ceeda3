package engines

import (
	"fmt"

	"github.com/philippgille/chromem-go"

	"github.com/agentlab/corag-agents/components/vectordb"
	chromemengine "github.com/agentlab/corag-agents/components/vectordb/engines/chromem"
	"github.com/agentlab/corag-agents/components/vectordb/engines/memory"
)

var (
	FromChromem = chromemengine.New
	FromMemory  = memory.New
)

// Open builds an engine by type. A chromem engine persists to path when path is set.
func Open(engineType vectordb.EngineType, path string, opts ...vectordb.Option) (vectordb.Engine, error) {
	switch engineType {
	case vectordb.Memory:
		return memory.New(opts...), nil
	case vectordb.Chromem, "":
		if path == "" {
			return chromemengine.New(chromem.NewDB(), opts...), nil
		}
		db, err := chromem.NewPersistentDB(path, true)
		if err != nil {
			return nil, fmt.Errorf("open chromem db %s: %w", path, err)
		}
		return chromemengine.New(db, opts...), nil
	}
	return nil, fmt.Errorf("unsupported vectordb engine: %s", engineType)
}
