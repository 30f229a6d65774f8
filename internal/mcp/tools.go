package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askAssistTool defines the ask_assist MCP tool.
var askAssistTool = mcp.NewTool("ask_assist",
	mcp.WithDescription("Ask the TalentPath support assistant a question. Returns the answer with confidence, cited help articles, and suggested next steps."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The support question, as the user would phrase it"),
	),
)

// searchKnowledgeTool defines the search_knowledge MCP tool.
var searchKnowledgeTool = mcp.NewTool("search_knowledge",
	mcp.WithDescription("Search the help-center knowledge base directly. Returns ranked passages with relevance scores, without invoking the answer generator."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of passages to return (default 3)"),
	),
)
