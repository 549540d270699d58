package xmlcontext

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/dhamidi/xmlsp/document"
	"github.com/dhamidi/xmlsp/xsd"
)

const testSchema = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="tool">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="inputs">
          <xs:complexType>
            <xs:sequence>
              <xs:element name="param">
                <xs:complexType>
                  <xs:attribute name="name"/>
                </xs:complexType>
              </xs:element>
            </xs:sequence>
          </xs:complexType>
        </xs:element>
      </xs:sequence>
      <xs:attribute name="id"/>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func newTestService(t *testing.T) *Service {
	t.Helper()
	tree, err := xsd.Load(strings.NewReader(testSchema))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return NewService(tree)
}

func TestResolveAttachesSchemaNode(t *testing.T) {
	svc := newTestService(t)
	doc := document.New("<tool>\n  <inputs>\n    <param name=\"input1\"/>\n  </inputs>\n</tool>")

	ctx := svc.Resolve(doc, document.Position{Line: 2, Character: 6}) // on 'a' of param
	if !ctx.IsTag() || ctx.TokenName != "param" {
		t.Fatalf("token = %v %q, want tag param", ctx.TokenType, ctx.TokenName)
	}
	if ctx.Node == nil || ctx.Node.Name != "param" {
		t.Fatalf("Node = %+v, want param definition", ctx.Node)
	}
}

func TestResolveFallsBackToRootNode(t *testing.T) {
	svc := newTestService(t)

	// Cursor before any element: the ancestor stack is empty.
	doc := document.New("  \n<tool></tool>")
	ctx := svc.Resolve(doc, document.Position{Line: 0, Character: 0})
	if ctx.Node == nil || ctx.Node.Name != "tool" {
		t.Errorf("Node = %+v, want schema root", ctx.Node)
	}

	// Element name the schema does not define.
	doc = document.New(`<mystery></mystery>`)
	ctx = svc.Resolve(doc, document.Position{Line: 0, Character: 3})
	if !ctx.IsTag() || ctx.TokenName != "mystery" {
		t.Fatalf("token = %v %q, want tag mystery", ctx.TokenType, ctx.TokenName)
	}
	if ctx.Node == nil || ctx.Node.Name != "tool" {
		t.Errorf("Node = %+v, want schema root fallback", ctx.Node)
	}
}

func TestResolveEmptyDocument(t *testing.T) {
	svc := newTestService(t)
	ctx := svc.Resolve(document.New("  \n "), document.Position{})

	if !ctx.IsEmpty {
		t.Error("IsEmpty = false, want true")
	}
	if ctx.TokenType != TokenUnknown {
		t.Errorf("TokenType = %v, want TokenUnknown", ctx.TokenType)
	}
	if ctx.Node != nil {
		t.Errorf("Node = %+v, want nil on empty document", ctx.Node)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	doc := document.New(`<tool id="mytool"><inputs>`)
	pos := document.Position{Line: 0, Character: 12} // inside "mytool"

	first := svc.Resolve(doc, pos)
	second := svc.Resolve(doc, pos)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated resolution differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestResolveConcurrent(t *testing.T) {
	svc := newTestService(t)
	doc := document.New(`<tool id="mytool"><inputs><param name="x"/></inputs></tool>`)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := svc.Resolve(doc, document.Position{Line: 0, Character: 2})
			if !ctx.IsTag() || ctx.TokenName != "tool" {
				t.Errorf("token = %v %q, want tag tool", ctx.TokenType, ctx.TokenName)
			}
		}()
	}
	wg.Wait()
}
