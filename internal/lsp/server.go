package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// ServerVersion is reported in the initialize handshake. The CLI
// overrides it with the build's release version.
var ServerVersion = "0.2.0"

type Server struct {
	in     *bufio.Reader
	out    io.Writer
	logger *log.Logger

	docs         map[string]*document
	shuttingDown bool
}

func NewServer(in io.Reader, out io.Writer, logger *log.Logger) *Server {
	return &Server{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
		docs:   map[string]*document{},
	}
}

type inboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type responseMessage struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   *respError  `json:"error,omitempty"`
}

type respError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type publishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

type initializeResult struct {
	Capabilities serverCapabilities `json:"capabilities"`
	ServerInfo   serverInfo         `json:"serverInfo"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type serverCapabilities struct {
	TextDocumentSync           int                      `json:"textDocumentSync"`
	DocumentFormattingProvider bool                     `json:"documentFormattingProvider"`
	OnTypeFormattingProvider   *onTypeFormattingOptions `json:"documentOnTypeFormattingProvider,omitempty"`
	SemanticTokensProvider     *semanticTokensOptions   `json:"semanticTokensProvider,omitempty"`
	CompletionProvider         *completionProvider      `json:"completionProvider,omitempty"`
	HoverProvider              bool                     `json:"hoverProvider"`
}

type onTypeFormattingOptions struct {
	FirstTriggerCharacter string   `json:"firstTriggerCharacter"`
	MoreTriggerCharacter  []string `json:"moreTriggerCharacter,omitempty"`
}

type completionProvider struct {
	ResolveProvider   bool     `json:"resolveProvider"`
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

type textDocumentIdentifier struct {
	URI string `json:"uri"`
}

type textDocumentItem struct {
	URI  string `json:"uri"`
	Text string `json:"text"`
}

type didOpenParams struct {
	TextDocument textDocumentItem `json:"textDocument"`
}

type versionedTextDocumentIdentifier struct {
	URI string `json:"uri"`
}

type textDocumentContentChangeEvent struct {
	Range *Range `json:"range,omitempty"`
	Text  string `json:"text"`
}

type didChangeParams struct {
	TextDocument   versionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []textDocumentContentChangeEvent `json:"contentChanges"`
}

type didCloseParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type documentFormattingParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Options      formattingOptions      `json:"options"`
}

type onTypeFormattingParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
	Ch           string                 `json:"ch"`
	Options      formattingOptions      `json:"options"`
}

type completionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type hoverParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity,omitempty"`
	Source   string `json:"source,omitempty"`
	Message  string `json:"message"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

type CompletionItem struct {
	Label         string `json:"label"`
	Kind          int    `json:"kind,omitempty"`
	Detail        string `json:"detail,omitempty"`
	Documentation string `json:"documentation,omitempty"`
}

func (s *Server) Run() error {
	for {
		raw, err := readMessage(s.in)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.logger.Printf("invalid JSON-RPC payload: %v", err)
			continue
		}

		if msg.Method == "" {
			continue
		}
		if err := s.handle(msg); err != nil {
			if err == io.EOF {
				return nil
			}
			s.logger.Printf("handle method=%s error: %v", msg.Method, err)
		}
	}
}

func (s *Server) handle(msg inboundMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg.ID)
	case "initialized":
		return nil
	case "shutdown":
		s.shuttingDown = true
		return s.reply(msg.ID, map[string]any{})
	case "exit":
		return io.EOF
	case "textDocument/didOpen":
		var p didOpenParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return err
		}
		s.docs[p.TextDocument.URI] = newDocument(p.TextDocument.Text)
		return s.publishDiagnostics(p.TextDocument.URI)
	case "textDocument/didChange":
		var p didChangeParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return err
		}
		doc, ok := s.docs[p.TextDocument.URI]
		if !ok {
			doc = newDocument("")
			s.docs[p.TextDocument.URI] = doc
		}
		for _, change := range p.ContentChanges {
			doc.applyChange(change.Range, change.Text)
		}
		return s.publishDiagnostics(p.TextDocument.URI)
	case "textDocument/didClose":
		var p didCloseParams
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return err
		}
		delete(s.docs, p.TextDocument.URI)
		return s.notify("textDocument/publishDiagnostics", publishDiagnosticsParams{
			URI:         p.TextDocument.URI,
			Diagnostics: []Diagnostic{},
		})
	case "textDocument/formatting":
		return s.handleFormatting(msg.ID, msg.Params)
	case "textDocument/onTypeFormatting":
		return s.handleOnTypeFormatting(msg.ID, msg.Params)
	case "textDocument/semanticTokens/full":
		return s.handleSemanticTokens(msg.ID, msg.Params)
	case "textDocument/completion":
		return s.handleCompletion(msg.ID, msg.Params)
	case "textDocument/hover":
		return s.handleHover(msg.ID, msg.Params)
	default:
		if msg.ID != nil {
			return s.reply(msg.ID, nil)
		}
		return nil
	}
}

func (s *Server) handleInitialize(id *json.RawMessage) error {
	res := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync:           2,
			DocumentFormattingProvider: true,
			OnTypeFormattingProvider: &onTypeFormattingOptions{
				FirstTriggerCharacter: "\n",
			},
			SemanticTokensProvider: &semanticTokensOptions{
				Legend: semanticTokensLegend{
					TokenTypes:     semanticTokenLegendTypes,
					TokenModifiers: []string{},
				},
				Full: true,
			},
			CompletionProvider: &completionProvider{
				ResolveProvider:   false,
				TriggerCharacters: []string{":", "<"},
			},
			HoverProvider: true,
		},
		ServerInfo: serverInfo{
			Name:    "scallop-lsp",
			Version: ServerVersion,
		},
	}
	return s.reply(id, res)
}

func (s *Server) handleFormatting(id *json.RawMessage, params json.RawMessage) error {
	var p documentFormattingParams
	if err := json.Unmarshal(params, &p); err != nil {
		return s.replyError(id, -32602, "invalid params for formatting")
	}
	doc, ok := s.docs[p.TextDocument.URI]
	if !ok {
		return s.reply(id, nil)
	}
	text := doc.Text()
	formatted := formatDocument(text, p.Options)
	if formatted == text {
		return s.reply(id, []TextEdit{})
	}
	edit := TextEdit{
		Range:   Range{Start: Position{}, End: endPosition(text)},
		NewText: formatted,
	}
	return s.reply(id, []TextEdit{edit})
}

func (s *Server) handleOnTypeFormatting(id *json.RawMessage, params json.RawMessage) error {
	var p onTypeFormattingParams
	if err := json.Unmarshal(params, &p); err != nil {
		return s.replyError(id, -32602, "invalid params for on-type formatting")
	}
	doc, ok := s.docs[p.TextDocument.URI]
	if !ok {
		return s.reply(id, nil)
	}
	edits := reindentEdits(doc.Text(), p.Position.Line, p.Options)
	return s.reply(id, edits)
}

// reindentEdits computes the minimal edit for reindenting one line:
// only the leading-whitespace span is replaced, and an already-correct
// line produces no edit at all.
func reindentEdits(text string, line int, opts formattingOptions) []TextEdit {
	lines := strings.Split(text, "\n")
	next, changed := reindentLine(lines, line, opts)
	if !changed {
		return []TextEdit{}
	}
	old := lines[line]
	oldWS := len(old) - len(strings.TrimLeft(old, " \t"))
	newWS := len(next) - len(strings.TrimLeft(next, " \t"))
	return []TextEdit{{
		Range: Range{
			Start: Position{Line: line, Character: 0},
			End:   Position{Line: line, Character: oldWS},
		},
		NewText: next[:newWS],
	}}
}

func (s *Server) handleSemanticTokens(id *json.RawMessage, params json.RawMessage) error {
	var p semanticTokensParams
	if err := json.Unmarshal(params, &p); err != nil {
		return s.replyError(id, -32602, "invalid params for semantic tokens")
	}
	doc, ok := s.docs[p.TextDocument.URI]
	if !ok {
		return s.reply(id, semanticTokens{})
	}
	return s.reply(id, semanticTokensFull(doc.Text()))
}

func (s *Server) handleCompletion(id *json.RawMessage, params json.RawMessage) error {
	var p completionParams
	if err := json.Unmarshal(params, &p); err != nil {
		return s.replyError(id, -32602, "invalid params for completion")
	}
	text := ""
	if doc, ok := s.docs[p.TextDocument.URI]; ok {
		text = doc.Text()
	}
	items := complete(text, p.Position)
	return s.reply(id, items)
}

func (s *Server) handleHover(id *json.RawMessage, params json.RawMessage) error {
	var p hoverParams
	if err := json.Unmarshal(params, &p); err != nil {
		return s.replyError(id, -32602, "invalid params for hover")
	}
	text := ""
	if doc, ok := s.docs[p.TextDocument.URI]; ok {
		text = doc.Text()
	}
	word, rng := wordAt(text, p.Position)
	if word == "" {
		return s.reply(id, nil)
	}

	doc, ok := hoverDocs[word]
	if !ok {
		return s.reply(id, nil)
	}
	h := Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: doc,
		},
		Range: &rng,
	}
	return s.reply(id, h)
}

func (s *Server) publishDiagnostics(uri string) error {
	doc, ok := s.docs[uri]
	if !ok {
		return nil
	}
	params := publishDiagnosticsParams{
		URI:         uri,
		Diagnostics: analyze(doc.Text()),
	}
	return s.notify("textDocument/publishDiagnostics", params)
}

func (s *Server) reply(id *json.RawMessage, result interface{}) error {
	if id == nil {
		return nil
	}
	var idVal interface{}
	if err := json.Unmarshal(*id, &idVal); err != nil {
		idVal = string(*id)
	}
	resp := responseMessage{
		JSONRPC: "2.0",
		ID:      idVal,
		Result:  result,
	}
	return writeMessage(s.out, resp)
}

func (s *Server) replyError(id *json.RawMessage, code int, msg string) error {
	if id == nil {
		return nil
	}
	var idVal interface{}
	if err := json.Unmarshal(*id, &idVal); err != nil {
		idVal = string(*id)
	}
	resp := responseMessage{
		JSONRPC: "2.0",
		ID:      idVal,
		Error: &respError{
			Code:    code,
			Message: msg,
		},
	}
	return writeMessage(s.out, resp)
}

func (s *Server) notify(method string, params interface{}) error {
	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	return writeMessage(s.out, payload)
}

func readMessage(r *bufio.Reader) ([]byte, error) {
	contentLength := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if strings.HasPrefix(strings.ToLower(line), "content-length:") {
			v := strings.TrimSpace(line[len("content-length:"):])
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length %q: %w", v, err)
			}
			contentLength = n
		}
	}
	if contentLength < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	buf := make([]byte, contentLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeMessage(w io.Writer, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(body))
	return err
}

func lineAt(text string, line int) string {
	if line < 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if line >= len(lines) {
		return ""
	}
	return lines[line]
}
